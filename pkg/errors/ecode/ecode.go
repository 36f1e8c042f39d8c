package ecode

// 错误码注册表，0表示成功，1xxxx为通用错误，2xxxx为业务错误

const (
	Success = 0

	InternalErr     = 10001
	RequireAuthErr  = 10002
	RequestParamErr = 10003

	// 信号无法解析成交易指令
	// 仓位计算/风控的拒绝不在注册表里：那是预期内的业务结果，按成功渲染
	SignalParseErr = 20001

	// 协作方失败：账户查询、行情查询、交易所下单
	AccountQueryErr = 20101
	QuoteQueryErr   = 20102
	ExchangeErr     = 20103
)

var messages = map[int]string{
	Success:         "OK",
	InternalErr:     "internal error",
	RequireAuthErr:  "authentication required",
	RequestParamErr: "invalid request parameter",
	SignalParseErr:  "signal cannot be parsed",
	AccountQueryErr: "account query failed",
	QuoteQueryErr:   "quote query failed",
	ExchangeErr:     "exchange order failed",
}

// Text 返回错误码的默认描述
func Text(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[InternalErr]
}
