package model

// TradeSignal 归一化之后的交易指令，只有方向和交易对两个字段
// 由Normalizer产出，产出后不可变；symbol一律大写
type TradeSignal struct {
	Action OrderSide `json:"action"`
	Symbol string    `json:"symbol"`
}

/*
结构化信号的原始格式，来源于外部告警（如TradingView）

	{
	  "action": "buy",
	  "symbol": "BTCUSDT",
	  "quantity": 0.01
	}

action缺失时回落到side字段；quantity即便携带也会被丢弃，
下单数量永远由仓位计算给出，不信任信号方
*/
type WebhookRequest struct {
	Action   string  `json:"action"`
	Side     string  `json:"side"`
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
}
