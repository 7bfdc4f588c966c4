package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表（仅保留下单所需字段，目录维护由外部系统负责）
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`                    // 商品名称
	PriceAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 当前售价
	ImageURL    string         `gorm:"type:varchar(500);default:''" json:"image_url"`             // 主图地址
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                       // 是否上架
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
