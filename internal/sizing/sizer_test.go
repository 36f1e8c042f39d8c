package sizing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tradeflow/internal/exchange"
	"tradeflow/internal/model"
)

func newTestPolicy(risk, reserve, minNotional float64) Policy {
	return Policy{
		RiskPercent:   decimal.NewFromFloat(risk),
		ReserveFloor:  decimal.NewFromFloat(reserve),
		MinNotional:   decimal.NewFromFloat(minNotional),
		QuoteCurrency: "USDT",
	}
}

func TestSizer_BuyWorkedExample(t *testing.T) {
	// 余额1000，底仓10，风险5% -> 下单金额 (1000-10)*0.05 = 49.5
	// 价格50000 -> 原始数量0.00099，步长0.0001 -> 0.0009
	ex := exchange.NewSimulatedExchange()
	ex.SetBalance("USDT", decimal.NewFromInt(1000))
	ex.SetPrice("BTCUSDT", decimal.NewFromInt(50000))
	ex.SetInstrument(&model.Instrument{Symbol: "BTCUSDT", Base: "BTC", Quote: "USDT", StepSize: "0.0001"})

	s := NewSizer(ex, newTestPolicy(5, 10, 10))
	dec, err := s.Size(context.Background(), model.TradeSignal{Action: model.Buy, Symbol: "BTCUSDT"})
	require.NoError(t, err)

	require.False(t, dec.Rejected)
	assert.True(t, dec.Quantity.Equal(decimal.RequireFromString("0.0009")), "quantity=%s", dec.Quantity)
	assert.True(t, dec.Notional.Equal(decimal.RequireFromString("49.5")), "notional=%s", dec.Notional)
	assert.True(t, dec.Price.Equal(decimal.NewFromInt(50000)))
}

func TestSizer_BuyInsufficientReserve(t *testing.T) {
	ex := exchange.NewSimulatedExchange()
	s := NewSizer(ex, newTestPolicy(5, 10, 10))

	// 余额低于或等于底仓都拒绝
	for _, free := range []int64{0, 5, 10} {
		ex.SetBalance("USDT", decimal.NewFromInt(free))
		dec, err := s.Size(context.Background(), model.TradeSignal{Action: model.Buy, Symbol: "BTCUSDT"})
		require.NoError(t, err)
		assert.True(t, dec.Rejected, "free=%d", free)
		assert.Equal(t, model.ReasonInsufficientReserve, dec.Reason, "free=%d", free)
	}
}

func TestSizer_BuyBelowMinNotional(t *testing.T) {
	ex := exchange.NewSimulatedExchange()
	// (12-10)*5% = 0.1 < 最小下单金额10
	ex.SetBalance("USDT", decimal.NewFromInt(12))

	s := NewSizer(ex, newTestPolicy(5, 10, 10))
	dec, err := s.Size(context.Background(), model.TradeSignal{Action: model.Buy, Symbol: "BTCUSDT"})
	require.NoError(t, err)

	assert.True(t, dec.Rejected)
	assert.Equal(t, model.ReasonBelowMinNotional, dec.Reason)
}

func TestSizer_BuyZeroAfterQuantize(t *testing.T) {
	ex := exchange.NewSimulatedExchange()
	ex.SetBalance("USDT", decimal.NewFromInt(1000))
	// 49.5/50000=0.00099，步长0.01截断后归零
	ex.SetPrice("BTCUSDT", decimal.NewFromInt(50000))
	ex.SetInstrument(&model.Instrument{Symbol: "BTCUSDT", Base: "BTC", Quote: "USDT", StepSize: "0.01"})

	s := NewSizer(ex, newTestPolicy(5, 10, 10))
	dec, err := s.Size(context.Background(), model.TradeSignal{Action: model.Buy, Symbol: "BTCUSDT"})
	require.NoError(t, err)

	assert.True(t, dec.Rejected)
	assert.Equal(t, model.ReasonZeroQuantity, dec.Reason)
}

func TestSizer_SellFullLiquidation(t *testing.T) {
	ex := exchange.NewSimulatedExchange()
	ex.SetBalance("BTC", decimal.NewFromInt(5))
	ex.SetInstrument(&model.Instrument{Symbol: "BTCUSDT", Base: "BTC", Quote: "USDT", StepSize: "0.0001"})

	s := NewSizer(ex, newTestPolicy(5, 10, 10))
	dec, err := s.Size(context.Background(), model.TradeSignal{Action: model.Sell, Symbol: "BTCUSDT"})
	require.NoError(t, err)

	// 全部清仓，没有部分卖出
	require.False(t, dec.Rejected)
	assert.True(t, dec.Quantity.Equal(decimal.NewFromInt(5)), "quantity=%s", dec.Quantity)
}

func TestSizer_SellNoAsset(t *testing.T) {
	ex := exchange.NewSimulatedExchange()
	ex.SetInstrument(&model.Instrument{Symbol: "BTCUSDT", Base: "BTC", Quote: "USDT", StepSize: "0.0001"})

	s := NewSizer(ex, newTestPolicy(5, 10, 10))
	dec, err := s.Size(context.Background(), model.TradeSignal{Action: model.Sell, Symbol: "BTCUSDT"})
	require.NoError(t, err)

	assert.True(t, dec.Rejected)
	assert.Equal(t, model.ReasonNoAssetToSell, dec.Reason)
}

func TestSizer_SellBaseAssetFallback(t *testing.T) {
	// 没有元数据时降级用计价币后缀推导基础币
	ex := exchange.NewSimulatedExchange()
	ex.SetBalance("ETH", decimal.NewFromInt(2))

	s := NewSizer(ex, newTestPolicy(5, 10, 10))
	dec, err := s.Size(context.Background(), model.TradeSignal{Action: model.Sell, Symbol: "ETHUSDT"})
	require.NoError(t, err)

	require.False(t, dec.Rejected)
	assert.True(t, dec.Quantity.Equal(decimal.NewFromInt(2)))

	// 后缀也对不上时结构化拒绝
	dec, err = s.Size(context.Background(), model.TradeSignal{Action: model.Sell, Symbol: "FOOBAR"})
	require.NoError(t, err)
	assert.True(t, dec.Rejected)
	assert.Equal(t, model.ReasonUnknownBaseAsset, dec.Reason)
}

func TestSizer_BuyNonPositivePrice(t *testing.T) {
	ex := exchange.NewSimulatedExchange()
	ex.SetBalance("USDT", decimal.NewFromInt(1000))
	ex.SetInstrument(&model.Instrument{Symbol: "BTCUSDT", Base: "BTC", Quote: "USDT", StepSize: "0.0001"})
	s := NewSizer(ex, newTestPolicy(5, 10, 10))

	// 行情返回0价不能panic，必须作为行情失败返回
	for _, price := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1)} {
		ex.SetPrice("BTCUSDT", price)
		require.NotPanics(t, func() {
			_, err := s.Size(context.Background(), model.TradeSignal{Action: model.Buy, Symbol: "BTCUSDT"})
			assert.ErrorIs(t, err, exchange.ErrQuoteQuery, "price=%s", price)
		})
	}
}

func TestSizer_CollaboratorErrorPropagates(t *testing.T) {
	ex := exchange.NewSimulatedExchange()
	ex.BalanceErr = errors.New("timeout")

	s := NewSizer(ex, newTestPolicy(5, 10, 10))
	_, err := s.Size(context.Background(), model.TradeSignal{Action: model.Buy, Symbol: "BTCUSDT"})
	assert.ErrorIs(t, err, exchange.ErrAccountQuery)
}
