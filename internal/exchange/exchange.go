package exchange

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"tradeflow/internal/model"
)

// 交易所协作方接口，核心引擎只消费这些读写，不关心具体交易所
// 余额和行情都是时点读取，接口实现不做缓存

// 协作方错误类别，上层用errors.Is区分后映射到错误码
var (
	ErrAccountQuery       = errors.New("exchange: account query failed")
	ErrQuoteQuery         = errors.New("exchange: quote query failed")
	ErrExchange           = errors.New("exchange: order placement failed")
	ErrInstrumentNotFound = errors.New("exchange: instrument not found")
)

type Exchange interface {
	// 查询某币种的可用余额
	GetFreeBalance(ctx context.Context, asset string) (decimal.Decimal, error)
	// 获取最新成交价
	GetLastPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
	// 获取交易对元数据（基础币、计价币、数量步长）
	GetInstrument(ctx context.Context, symbol string) (*model.Instrument, error)
	// 市价下单，quantity以基础币为单位
	PlaceMarketOrder(ctx context.Context, side model.OrderSide, symbol string, quantity decimal.Decimal) (*model.OrderResponse, error)
}
