package risk

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tradeflow/internal/model"
)

type fakeOrderGetter struct {
	record model.OrderRecord
	err    error
}

func (f *fakeOrderGetter) OrderGetLast(ctx context.Context, symbol string, side model.OrderSide) (model.OrderRecord, error) {
	return f.record, f.err
}

func TestControl_Allow(t *testing.T) {
	// 没有历史订单时放行
	rc := NewControl(&fakeOrderGetter{}, 30*time.Second)
	require.NoError(t, rc.Allow(context.Background(), "BTCUSDT", model.Buy))

	// 间隔内的重复信号拒绝
	rc = NewControl(&fakeOrderGetter{record: model.OrderRecord{
		ID:        1,
		CreatedAt: time.Now().Add(-5 * time.Second),
	}}, 30*time.Second)
	assert.ErrorIs(t, rc.Allow(context.Background(), "BTCUSDT", model.Buy), ErrTooFrequent)

	// 超过间隔后放行
	rc = NewControl(&fakeOrderGetter{record: model.OrderRecord{
		ID:        1,
		CreatedAt: time.Now().Add(-time.Minute),
	}}, 30*time.Second)
	assert.NoError(t, rc.Allow(context.Background(), "BTCUSDT", model.Buy))
}

func TestControl_QueryErrorBlocks(t *testing.T) {
	rc := NewControl(&fakeOrderGetter{err: assert.AnError}, 30*time.Second)
	assert.Error(t, rc.Allow(context.Background(), "BTCUSDT", model.Sell))
}
