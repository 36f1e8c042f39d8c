package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderSide string

const (
	Buy  OrderSide = "buy"
	Sell OrderSide = "sell"
)

type OrderResponse struct {
	OrderId string
	Status  int
	Message string
}

// OrderIntent 通过所有校验、可以直接交给交易所的下单请求
// Notional和Price是展示字段，只用于日志和接口返回，不参与下单
type OrderIntent struct {
	Symbol   string          `json:"symbol"`
	Side     OrderSide       `json:"side"`
	Quantity decimal.Decimal `json:"quantity"`

	Notional decimal.Decimal `json:"notional"`
	Price    decimal.Decimal `json:"price"`
}

type OrderRecord struct {
	ID        uint      `gorm:"column:id;primary_key;" json:"id"` // 主键id，自增长，不用设置
	OrderId   string    `gorm:"column:order_id;" json:"order_id"` // 交易所返回的订单id
	Symbol    string    `gorm:"column:symbol" json:"symbol"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	Side     OrderSide `gorm:"column:side" json:"side"`
	Price    string    `gorm:"column:price;type:decimal(30,12)" json:"price"`
	Quantity string    `gorm:"column:quantity;type:decimal(30,12)" json:"quantity"`
	Notional string    `gorm:"column:notional;type:decimal(30,12)" json:"notional"`
	Comment  string    `gorm:"column:comment" json:"comment"`
}

func (OrderRecord) TableName() string {
	return "order_record"
}
