package sizing

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"tradeflow/conf"
	"tradeflow/internal/exchange"
	"tradeflow/internal/model"
	"tradeflow/pkg/logger"
)

// 仓位计算：按可用余额百分比计算下单数量，信号里的数量一律不采信

var hundred = decimal.NewFromInt(100)

// Policy 仓位策略，进程启动时由配置构造一次，之后不可变
type Policy struct {
	// 单次买入动用可支配余额的百分比，取值[0,100]
	RiskPercent decimal.Decimal
	// 保留底仓，可用余额低于该值拒绝开仓
	ReserveFloor decimal.Decimal
	// 最小下单金额
	MinNotional decimal.Decimal
	// 计价币种，如USDT
	QuoteCurrency string
}

func PolicyFromConfig(tc conf.TradingConfig) Policy {
	quote := tc.QuoteCurrency
	if quote == "" {
		quote = "USDT"
	}
	return Policy{
		RiskPercent:   decimal.NewFromFloat(tc.RiskPercent),
		ReserveFloor:  decimal.NewFromFloat(tc.ReserveFloor),
		MinNotional:   decimal.NewFromFloat(tc.MinNotional),
		QuoteCurrency: strings.ToUpper(quote),
	}
}

type Sizer struct {
	ex     exchange.Exchange
	policy Policy
}

func NewSizer(ex exchange.Exchange, policy Policy) *Sizer {
	return &Sizer{ex: ex, policy: policy}
}

// Size 对一条归一化信号做仓位决策
// 返回的error只代表协作方失败；策略性拒绝通过SizingDecision.Rejected表达
func (s *Sizer) Size(ctx context.Context, sig model.TradeSignal) (*model.SizingDecision, error) {
	switch sig.Action {
	case model.Buy:
		return s.sizeBuy(ctx, sig)
	default:
		return s.sizeSell(ctx, sig)
	}
}

// 买入：动用 (可用余额-保留底仓)×风险百分比 的金额，换算成基础币数量后按步长截断
func (s *Sizer) sizeBuy(ctx context.Context, sig model.TradeSignal) (*model.SizingDecision, error) {
	// 实时拉取计价币可用余额，不允许用缓存的快照
	free, err := s.ex.GetFreeBalance(ctx, s.policy.QuoteCurrency)
	if err != nil {
		return nil, err
	}

	// 余额等于底仓时可支配为0，同样按底仓不足拒绝
	if free.LessThanOrEqual(s.policy.ReserveFloor) {
		return &model.SizingDecision{Rejected: true, Reason: model.ReasonInsufficientReserve}, nil
	}

	spendable := free.Sub(s.policy.ReserveFloor)
	notional := spendable.Mul(s.policy.RiskPercent).Div(hundred)

	if notional.LessThan(s.policy.MinNotional) {
		return &model.SizingDecision{Rejected: true, Reason: model.ReasonBelowMinNotional}, nil
	}

	price, err := s.ex.GetLastPrice(ctx, sig.Symbol)
	if err != nil {
		return nil, err
	}
	// 行情返回0或负价时decimal除法会panic，按行情失败处理
	if !price.IsPositive() {
		return nil, fmt.Errorf("%w: %s: non-positive price %s", exchange.ErrQuoteQuery, sig.Symbol, price)
	}

	rawQty := notional.Div(price)
	qty := Quantize(rawQty, s.lotConstraint(ctx, sig.Symbol))

	// 不足一个步长，截断后归零，不能下单
	if qty.IsZero() {
		return &model.SizingDecision{Rejected: true, Reason: model.ReasonZeroQuantity}, nil
	}

	return &model.SizingDecision{
		Quantity: qty,
		Notional: notional,
		Price:    price,
	}, nil
}

// 卖出：全部清仓，没有部分卖出策略
func (s *Sizer) sizeSell(ctx context.Context, sig model.TradeSignal) (*model.SizingDecision, error) {
	base, ok := s.baseAsset(ctx, sig.Symbol)
	if !ok {
		return &model.SizingDecision{Rejected: true, Reason: model.ReasonUnknownBaseAsset}, nil
	}

	free, err := s.ex.GetFreeBalance(ctx, base)
	if err != nil {
		return nil, err
	}

	if free.LessThanOrEqual(decimal.Zero) {
		return &model.SizingDecision{Rejected: true, Reason: model.ReasonNoAssetToSell}, nil
	}

	// 卖出数量不超过实际持仓，不做空
	return &model.SizingDecision{Quantity: free}, nil
}

// baseAsset 推导交易对的基础币
// 优先用交易所的元数据拆分币对；拿不到元数据时降级为
// 去掉计价币后缀的字符串推导（BTCUSDT -> BTC），降级必须告警
func (s *Sizer) baseAsset(ctx context.Context, symbol string) (string, bool) {
	if inst, err := s.ex.GetInstrument(ctx, symbol); err == nil && inst.Base != "" {
		return inst.Base, true
	}

	logger.Warnf("拿不到%s的交易对元数据，降级用%s后缀推导基础币", symbol, s.policy.QuoteCurrency)
	if strings.HasSuffix(symbol, s.policy.QuoteCurrency) && len(symbol) > len(s.policy.QuoteCurrency) {
		return strings.TrimSuffix(symbol, s.policy.QuoteCurrency), true
	}
	return "", false
}

// lotConstraint 查交易对的数量步长，查不到返回nil由量化做降级
func (s *Sizer) lotConstraint(ctx context.Context, symbol string) *model.LotConstraint {
	inst, err := s.ex.GetInstrument(ctx, symbol)
	if err != nil || inst.StepSize == "" {
		return nil
	}
	return &model.LotConstraint{Symbol: symbol, StepSize: inst.StepSize}
}
