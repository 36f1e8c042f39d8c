package engine

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tradeflow/internal/exchange"
	"tradeflow/internal/model"
	"tradeflow/internal/signal"
	"tradeflow/internal/sizing"
)

func newTestEngine(ex *exchange.SimulatedExchange) *Engine {
	policy := sizing.Policy{
		RiskPercent:   decimal.NewFromInt(5),
		ReserveFloor:  decimal.NewFromInt(10),
		MinNotional:   decimal.NewFromInt(10),
		QuoteCurrency: "USDT",
	}
	return New(
		signal.NewNormalizer("BTCUSDT"),
		sizing.NewSizer(ex, policy),
		ex,
		nil, // 不落库
		nil, // 不限频
	)
}

func seedBtcMarket(ex *exchange.SimulatedExchange) {
	ex.SetBalance("USDT", decimal.NewFromInt(1000))
	ex.SetPrice("BTCUSDT", decimal.NewFromInt(50000))
	ex.SetInstrument(&model.Instrument{Symbol: "BTCUSDT", Base: "BTC", Quote: "USDT", StepSize: "0.0001"})
}

func TestEngine_QuantityInSignalIsDiscarded(t *testing.T) {
	ex := exchange.NewSimulatedExchange()
	seedBtcMarket(ex)
	e := newTestEngine(ex)

	// 信号带QTY=7，但下单数量必须按余额计算出的0.0009，绝不是7
	res, err := e.Process(context.Background(), []byte("BUY BTCUSDT QTY=7"))
	require.NoError(t, err)
	require.True(t, res.Accepted)

	placed := ex.PlacedOrders()
	require.Len(t, placed, 1)
	assert.True(t, placed[0].Quantity.Equal(decimal.RequireFromString("0.0009")),
		"quantity=%s", placed[0].Quantity)
	assert.Equal(t, model.Buy, placed[0].Side)
	assert.Equal(t, "BTCUSDT", placed[0].Symbol)
}

func TestEngine_AcceptedResult(t *testing.T) {
	ex := exchange.NewSimulatedExchange()
	seedBtcMarket(ex)
	e := newTestEngine(ex)

	res, err := e.Process(context.Background(), []byte(`{"action":"buy","symbol":"BTCUSDT"}`))
	require.NoError(t, err)

	require.True(t, res.Accepted)
	assert.NotEmpty(t, res.OrderId)
	require.NotNil(t, res.Intent)
	assert.Equal(t, "BTCUSDT", res.Intent.Symbol)
	assert.Equal(t, model.Buy, res.Intent.Side)
	assert.True(t, res.Intent.Notional.Equal(decimal.RequireFromString("49.5")))
}

func TestEngine_RejectedDecisionNeverPlacesOrder(t *testing.T) {
	ex := exchange.NewSimulatedExchange()
	// 余额等于底仓，买入必须被拒
	ex.SetBalance("USDT", decimal.NewFromInt(10))
	e := newTestEngine(ex)

	res, err := e.Process(context.Background(), []byte(`{"action":"buy"}`))
	require.NoError(t, err)

	assert.True(t, res.Rejected)
	assert.Equal(t, model.ReasonInsufficientReserve, res.Reason)
	assert.Empty(t, ex.PlacedOrders())
}

func TestEngine_SellWithoutHoldingRejected(t *testing.T) {
	ex := exchange.NewSimulatedExchange()
	ex.SetInstrument(&model.Instrument{Symbol: "BTCUSDT", Base: "BTC", Quote: "USDT", StepSize: "0.0001"})
	e := newTestEngine(ex)

	res, err := e.Process(context.Background(), []byte("CLOSE LONG BTCUSDT"))
	require.NoError(t, err)

	assert.True(t, res.Rejected)
	assert.Equal(t, model.ReasonNoAssetToSell, res.Reason)
	assert.Empty(t, ex.PlacedOrders())
}

func TestEngine_NormalizeErrorPropagates(t *testing.T) {
	ex := exchange.NewSimulatedExchange()
	e := newTestEngine(ex)

	_, err := e.Process(context.Background(), []byte("hello world"))
	assert.ErrorIs(t, err, signal.ErrUnparseable)
	assert.Empty(t, ex.PlacedOrders())
}

func TestEngine_ExchangeErrorPropagates(t *testing.T) {
	ex := exchange.NewSimulatedExchange()
	seedBtcMarket(ex)
	ex.OrderErr = assert.AnError
	e := newTestEngine(ex)

	_, err := e.Process(context.Background(), []byte(`{"action":"buy"}`))
	assert.ErrorIs(t, err, exchange.ErrExchange)
}
