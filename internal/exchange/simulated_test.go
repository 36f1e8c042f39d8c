package exchange

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDryRunExchange_Seeded(t *testing.T) {
	ex := NewDryRunExchange("btcusdt", "usdt")
	ctx := context.Background()

	// 预置行情必须能走通一条完整的买入链路：余额、价格、元数据都就绪
	free, err := ex.GetFreeBalance(ctx, "USDT")
	require.NoError(t, err)
	assert.True(t, free.IsPositive())

	price, err := ex.GetLastPrice(ctx, "BTCUSDT")
	require.NoError(t, err)
	assert.True(t, price.IsPositive())

	inst, err := ex.GetInstrument(ctx, "BTCUSDT")
	require.NoError(t, err)
	assert.Equal(t, "BTC", inst.Base)
	assert.Equal(t, "USDT", inst.Quote)
	assert.NotEmpty(t, inst.StepSize)
}
