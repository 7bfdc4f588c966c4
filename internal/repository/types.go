package repository

import "time"

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// CartListFilter 管理端查询购物车的过滤条件
type CartListFilter struct {
	Page     int
	PageSize int
	UserID   uint
}
