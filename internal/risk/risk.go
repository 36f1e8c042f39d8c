package risk

import (
	"context"
	"errors"
	"time"

	"tradeflow/internal/model"
)

// 查询同交易对同方向的最近一单，由dao.OrderDao实现
type LastOrderGetter interface {
	OrderGetLast(ctx context.Context, symbol string, side model.OrderSide) (model.OrderRecord, error)
}

// 风控：同交易对同方向的信号在间隔内只允许下一单
// 外部告警经常重复推送，没有这道闸一个信号会被执行多次
type Control struct {
	dao LastOrderGetter
	// 允许下单的时间间隔
	interval time.Duration
}

var ErrTooFrequent = errors.New("risk: duplicate signal inside order interval")

func NewControl(d LastOrderGetter, interval time.Duration) *Control {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Control{
		dao:      d,
		interval: interval,
	}
}

// Allow 是否允许下单
func (r *Control) Allow(ctx context.Context, symbol string, side model.OrderSide) error {
	// 查找同交易对同方向的最近一单
	record, err := r.dao.OrderGetLast(ctx, symbol, side)
	if err != nil {
		return err
	}

	if record.ID == 0 {
		// 没有历史订单
		return nil
	}

	if time.Since(record.CreatedAt) < r.interval {
		// 小于设定的时间间隔，不允许重复下单
		return ErrTooFrequent
	}

	return nil
}
