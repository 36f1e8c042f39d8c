package consts

const (
	// RequestId 请求id名称
	RequestId = "request_id"

	// 信号里没有symbol时使用的默认交易对
	DefaultSymbol = "BTCUSDT"
	// 默认计价币种
	DefaultQuoteCurrency = "USDT"
	// 拿不到交易对步长元数据时使用的数量精度（降级行为，必须告警）
	DefaultQtyPrecision = 6

	DateLayout   = "2006-01-02"
	TimeLayout   = "2006-01-02 15:04:05"
	TimeLayoutMs = "2006-01-02 15:04:05.000"
)
