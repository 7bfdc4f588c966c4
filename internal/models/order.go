package models

import (
	"time"
)

// Order 订单表；创建后仅 status 可变
type Order struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                   // 主键
	UserID    uint      `gorm:"index;not null" json:"user_id"`                          // 下单用户ID
	TotalCost Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_cost"` // 下单时总价，不再重算
	Status    string    `gorm:"type:varchar(20);index;not null" json:"status"`          // 订单状态
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                             // 更新时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`   // 下单用户（管理端列表）
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
