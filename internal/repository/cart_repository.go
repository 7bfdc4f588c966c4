package repository

import (
	"errors"
	"time"

	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByUser(userID uint) ([]models.CartItem, error)
	ListAll(filter CartListFilter) ([]models.CartItem, int64, error)
	GetByUserAndProduct(userID, productID uint) (*models.CartItem, error)
	AddQuantity(userID, productID uint, quantity int) (*models.CartItem, error)
	SetQuantity(userID, productID uint, quantity int) (*models.CartItem, error)
	DeleteByUserAndProduct(userID, productID uint) (*models.CartItem, error)
	LockByUser(userID uint) ([]models.CartItem, error)
	ClearByUser(userID uint, itemIDs []uint) (int64, error)
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByUser 获取用户购物车项（关联商品为实时数据）
func (r *GormCartRepository) ListByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Where("user_id = ?", userID).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListAll 管理端查看全部购物车项
func (r *GormCartRepository) ListAll(filter CartListFilter) ([]models.CartItem, int64, error) {
	query := r.db.Model(&models.CartItem{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var items []models.CartItem
	if err := query.Preload("Product").Order("user_id asc, id asc").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetByUserAndProduct 获取单个购物车项
func (r *GormCartRepository) GetByUserAndProduct(userID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Preload("Product").
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// AddQuantity 累加数量：不存在则插入，存在则在同一条语句中 quantity += 增量
func (r *GormCartRepository) AddQuantity(userID, productID uint, quantity int) (*models.CartItem, error) {
	now := time.Now()
	item := models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
			"updated_at": now,
		}),
	}).Create(&item).Error
	if err != nil {
		return nil, err
	}
	// 冲突分支下回填的主键不可靠，按唯一键重新读取
	return r.GetByUserAndProduct(userID, productID)
}

// SetQuantity 覆盖数量，记录不存在时返回 nil
func (r *GormCartRepository) SetQuantity(userID, productID uint, quantity int) (*models.CartItem, error) {
	result := r.db.Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByUserAndProduct(userID, productID)
}

// DeleteByUserAndProduct 删除购物车项并返回被删除的记录，记录不存在时返回 nil
func (r *GormCartRepository) DeleteByUserAndProduct(userID, productID uint) (*models.CartItem, error) {
	item, err := r.GetByUserAndProduct(userID, productID)
	if err != nil || item == nil {
		return nil, err
	}
	result := r.db.Where("id = ?", item.ID).Delete(&models.CartItem{})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return item, nil
}

// LockByUser 读取用户购物车并关联实时商品；postgres 下对购物车行加行锁
func (r *GormCartRepository) LockByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	query := r.db.Where("user_id = ?", userID)
	if supportsRowLocking(r.db) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return items, nil
	}

	productIDs := make([]uint, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}
	var products []models.Product
	if err := r.db.Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for i := range items {
		items[i].Product = byID[items[i].ProductID]
	}
	return items, nil
}

// ClearByUser 清空购物车；itemIDs 非空时只删除这些行（下单时读到的快照）
func (r *GormCartRepository) ClearByUser(userID uint, itemIDs []uint) (int64, error) {
	query := r.db.Where("user_id = ?", userID)
	if len(itemIDs) > 0 {
		query = query.Where("id IN ?", itemIDs)
	}
	result := query.Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}
