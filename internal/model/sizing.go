package model

import "github.com/shopspring/decimal"

// BalanceSnapshot 账户某币种的时点可用余额
// 每次仓位决策必须重新拉取，不允许缓存：快照一旦过期，
// “下单数量不超过实际可用资金”这一约束就不再成立
type BalanceSnapshot struct {
	Asset string
	Free  decimal.Decimal
}

// PriceQuote 某交易对的时点成交价
type PriceQuote struct {
	Symbol string
	Price  decimal.Decimal
}

// Instrument 交易对元数据，来源于交易所instruments接口
// Base/Quote用于拆分币对，StepSize是数量步长的原始字符串（如 "0.0001"）
type Instrument struct {
	Symbol   string
	Base     string
	Quote    string
	StepSize string
}

// LotConstraint 数量量化网格，StepSize保留交易所返回的原始字符串，
// 精度 = 去掉尾部0之后的小数位数
type LotConstraint struct {
	Symbol   string
	StepSize string
}

// RejectReason 仓位计算的结构化拒绝原因，属于预期内的业务结果，不是错误
type RejectReason string

const (
	// 可用余额低于保留底仓
	ReasonInsufficientReserve RejectReason = "insufficient_reserve"
	// 计算出的下单金额低于交易所最小限额
	ReasonBelowMinNotional RejectReason = "below_min_notional"
	// 量化之后数量归零，不足一个步长
	ReasonZeroQuantity RejectReason = "quantity_below_lot_size"
	// 卖出时没有持仓
	ReasonNoAssetToSell RejectReason = "no_asset_to_sell"
	// 无法从symbol推导出基础币
	ReasonUnknownBaseAsset RejectReason = "unknown_base_asset"
	// 触发风控：同方向信号间隔过短
	ReasonDuplicateSignal RejectReason = "duplicate_signal"
)

// SizingDecision 仓位计算的最终输出
// Rejected为true时Quantity无意义，绝不允许进入下单流程
type SizingDecision struct {
	Quantity decimal.Decimal
	Notional decimal.Decimal
	Price    decimal.Decimal
	Rejected bool
	Reason   RejectReason
}

// ProcessResult 单次webhook处理的终态，交给handler渲染
type ProcessResult struct {
	Accepted bool         `json:"accepted"`
	Rejected bool         `json:"rejected"`
	Reason   RejectReason `json:"reason,omitempty"`
	Intent   *OrderIntent `json:"intent,omitempty"`
	OrderId  string       `json:"order_id,omitempty"`
}
