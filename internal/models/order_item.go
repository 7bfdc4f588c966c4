package models

import (
	"time"
)

// OrderItem 订单项表，price_at_purchase 为下单时的价格快照
type OrderItem struct {
	ID              uint      `gorm:"primarykey" json:"id"`                                          // 主键
	OrderID         uint      `gorm:"index;not null" json:"order_id"`                                // 订单ID
	ProductID       uint      `gorm:"index;not null" json:"product_id"`                              // 商品ID
	ProductName     string    `gorm:"type:varchar(255);default:''" json:"product_name"`              // 商品名称快照
	Quantity        int       `gorm:"not null" json:"quantity"`                                      // 数量
	PriceAtPurchase Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price_at_purchase"` // 成交单价
	CreatedAt       time.Time `gorm:"index" json:"created_at"`                                       // 创建时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal 小计
func (i OrderItem) LineTotal() Money {
	return i.PriceAtPurchase.Mul(i.Quantity)
}
