package dao

import (
	"context"

	"gorm.io/gorm"
	"tradeflow/internal/model"
)

type OrderDao struct {
	db *gorm.DB
}

func NewOrderDao(db *gorm.DB) *OrderDao {
	return &OrderDao{db: db}
}

// 插入下单记录
func (d *OrderDao) OrderCreateNew(ctx context.Context, record *model.OrderRecord) error {
	return d.db.WithContext(ctx).Create(record).Error
}

// 查找同交易对同方向的最后一个订单
func (d *OrderDao) OrderGetLast(ctx context.Context, symbol string, side model.OrderSide) (or model.OrderRecord, err error) {
	err = d.db.WithContext(ctx).Model(&model.OrderRecord{}).
		Where("symbol = ?", symbol).
		Where("side = ?", side).
		Order("created_at DESC").
		Limit(1).
		Find(&or).Error
	return
}

// 最近的下单记录，给状态页用
func (d *OrderDao) OrderListRecent(ctx context.Context, limit int) (records []model.OrderRecord, err error) {
	if limit <= 0 {
		limit = 20
	}
	err = d.db.WithContext(ctx).Model(&model.OrderRecord{}).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return
}
