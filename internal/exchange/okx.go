package exchange

import (
	"context"
	"fmt"

	goexv2 "github.com/nntaoli-project/goex/v2"
	goexmodel "github.com/nntaoli-project/goex/v2/model"
	"github.com/nntaoli-project/goex/v2/options"
	"github.com/shopspring/decimal"
	"tradeflow/internal/account"
	"tradeflow/internal/model"
)

// 基于goex的OKX现货实现，本服务只做现货市价单

type OkxExchange struct {
	pub         goexv2.IPubRest
	acc         *account.Service
	instruments *PublicClient
	prv         goexv2.IPrvRest
}

func NewOkxExchange(apiKey, apiSecret, passphrase string) *OkxExchange {
	// okxv5 api 如果要使用模拟交易，需要切到模拟交易下创建apikey
	opts := []options.ApiOption{
		options.WithApiKey(apiKey),
		options.WithApiSecretKey(apiSecret),
		options.WithPassphrase(passphrase),
	}

	spot := goexv2.OKx.Spot
	prv := spot.NewPrvApi(opts...)
	return &OkxExchange{
		pub:         spot,
		prv:         prv,
		acc:         account.NewService(prv),
		instruments: NewPublicClient(),
	}
}

func (e *OkxExchange) GetFreeBalance(ctx context.Context, asset string) (decimal.Decimal, error) {
	bal, err := e.acc.GetBalance(ctx, asset)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s: %v", ErrAccountQuery, asset, err)
	}
	return bal.Available, nil
}

func (e *OkxExchange) GetLastPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	pair, err := e.toCurrencyPair(ctx, symbol)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s: %v", ErrQuoteQuery, symbol, err)
	}
	ticker, _, err := e.pub.GetTicker(pair)
	if err != nil || ticker == nil {
		return decimal.Zero, fmt.Errorf("%w: %s: %v", ErrQuoteQuery, symbol, err)
	}
	return decimal.NewFromFloat(ticker.Last), nil
}

func (e *OkxExchange) GetInstrument(ctx context.Context, symbol string) (*model.Instrument, error) {
	return e.instruments.GetInstrument(ctx, symbol)
}

// PlaceMarketOrder 市价下单
// OKX现货市价买单默认按计价币数量下单，这里统一传tgtCcy=base_ccy，
// 保证quantity的单位永远是基础币，和仓位计算的输出一致
func (e *OkxExchange) PlaceMarketOrder(ctx context.Context, side model.OrderSide, symbol string, quantity decimal.Decimal) (*model.OrderResponse, error) {
	pair, err := e.toCurrencyPair(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrExchange, symbol, err)
	}

	var goexSide goexmodel.OrderSide
	switch side {
	case model.Buy:
		goexSide = goexmodel.Spot_Buy
	case model.Sell:
		goexSide = goexmodel.Spot_Sell
	default:
		return nil, fmt.Errorf("%w: invalid order side: %s", ErrExchange, side)
	}

	qty, _ := quantity.Float64()
	opts := []goexmodel.OptionParameter{
		{Key: "tgtCcy", Value: "base_ccy"},
	}

	createdOrder, resp, err := e.prv.CreateOrder(pair, qty, 0, goexSide, goexmodel.OrderType_Market, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s %s: %v (resp=%s)", ErrExchange, side, symbol, quantity, err, string(resp))
	}

	return &model.OrderResponse{
		OrderId: createdOrder.Id,
		Status:  int(createdOrder.Status),
	}, nil
}

// symbol 格式转换: "BTCUSDT" -> goex 需要的 CurrencyPair
// 用instruments元数据拆分币对，不做字符串猜测
func (e *OkxExchange) toCurrencyPair(ctx context.Context, symbol string) (goexmodel.CurrencyPair, error) {
	inst, err := e.instruments.GetInstrument(ctx, symbol)
	if err != nil {
		return goexmodel.CurrencyPair{}, err
	}
	return e.pub.NewCurrencyPair(inst.Base, inst.Quote)
}
