package service

import (
	"errors"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"gorm.io/gorm"
)

// CartItemDetail 购物车项详情，名称与价格取自商品实时数据
type CartItemDetail struct {
	ID          uint         `json:"id"`
	UserID      uint         `json:"user_id"`
	ProductID   uint         `json:"product_id"`
	Quantity    int          `json:"quantity"`
	ProductName string       `json:"productname"`
	Price       models.Money `json:"price"`
	ImageURL    string       `json:"image_url"`
	LineTotal   models.Money `json:"line_total"`
	Available   bool         `json:"available"`
	Removed     bool         `json:"removed,omitempty"`
}

// CartService 购物车服务
type CartService struct {
	guard       *AccountGuard
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	maxQuantity int
}

// NewCartService 创建购物车服务
func NewCartService(guard *AccountGuard, cartRepo repository.CartRepository, productRepo repository.ProductRepository, maxQuantity int) *CartService {
	if maxQuantity <= 0 {
		maxQuantity = constants.DefaultMaxQuantityPerLine
	}
	return &CartService{
		guard:       guard,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		maxQuantity: maxQuantity,
	}
}

// ListItems 获取用户购物车（只读，不做封禁校验）
func (s *CartService) ListItems(actor Actor) ([]CartItemDetail, error) {
	if !actor.valid() {
		return nil, ErrUnauthorized
	}
	items, err := s.cartRepo.ListByUser(actor.UserID)
	if err != nil {
		return nil, wrapStorageError(err)
	}
	return toCartItemDetails(items), nil
}

// ListAll 管理端查看全部购物车
func (s *CartService) ListAll(filter repository.CartListFilter) ([]CartItemDetail, int64, error) {
	items, total, err := s.cartRepo.ListAll(filter)
	if err != nil {
		return nil, 0, wrapStorageError(err)
	}
	return toCartItemDetails(items), total, nil
}

// AddItem 累加商品数量，返回合并后的行
func (s *CartService) AddItem(actor Actor, productID uint, quantity int) (*CartItemDetail, error) {
	if err := s.validateQuantity(quantity); err != nil {
		return nil, err
	}
	if productID == 0 {
		return nil, ErrProductNotFound
	}
	if _, err := s.guard.Check(actor.UserID); err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, wrapStorageError(err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, ErrProductUnavailable
	}

	item, err := s.cartRepo.AddQuantity(actor.UserID, productID, quantity)
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrProductNotFound
		}
		logger.Errorw("cart_add_item_failed", "user_id", actor.UserID, "product_id", productID, "error", err)
		return nil, wrapStorageError(err)
	}
	if item == nil {
		return nil, ErrTransactionFailure
	}
	logger.Debugw("cart_item_added", "user_id", actor.UserID, "product_id", productID, "increment", quantity, "quantity", item.Quantity)
	detail := toCartItemDetail(*item)
	return &detail, nil
}

// SetQuantity 覆盖商品数量；quantity < 1 视为删除该行
func (s *CartService) SetQuantity(actor Actor, productID uint, quantity int) (*CartItemDetail, error) {
	if quantity < 1 {
		return s.RemoveItem(actor, productID)
	}
	if err := s.validateQuantity(quantity); err != nil {
		return nil, err
	}
	if _, err := s.guard.Check(actor.UserID); err != nil {
		return nil, err
	}
	item, err := s.cartRepo.SetQuantity(actor.UserID, productID, quantity)
	if err != nil {
		return nil, wrapStorageError(err)
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	detail := toCartItemDetail(*item)
	return &detail, nil
}

// RemoveItem 删除购物车行，返回被删除的行
func (s *CartService) RemoveItem(actor Actor, productID uint) (*CartItemDetail, error) {
	if _, err := s.guard.Check(actor.UserID); err != nil {
		return nil, err
	}
	item, err := s.cartRepo.DeleteByUserAndProduct(actor.UserID, productID)
	if err != nil {
		return nil, wrapStorageError(err)
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	detail := toCartItemDetail(*item)
	detail.Removed = true
	return &detail, nil
}

// clearInTx 在下单事务中清空购物车，仅供下单流程调用
func (s *CartService) clearInTx(tx *gorm.DB, userID uint, itemIDs []uint) (int64, error) {
	return s.cartRepo.WithTx(tx).ClearByUser(userID, itemIDs)
}

func (s *CartService) validateQuantity(quantity int) error {
	if quantity < 1 || quantity > s.maxQuantity {
		return ErrInvalidQuantity
	}
	return nil
}

func toCartItemDetails(items []models.CartItem) []CartItemDetail {
	details := make([]CartItemDetail, 0, len(items))
	for _, item := range items {
		details = append(details, toCartItemDetail(item))
	}
	return details
}

func toCartItemDetail(item models.CartItem) CartItemDetail {
	detail := CartItemDetail{
		ID:        item.ID,
		UserID:    item.UserID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Price:     models.ZeroMoney(),
		LineTotal: models.ZeroMoney(),
	}
	if item.Product != nil {
		detail.ProductName = item.Product.Name
		detail.Price = item.Product.PriceAmount
		detail.ImageURL = item.Product.ImageURL
		detail.LineTotal = item.Product.PriceAmount.Mul(item.Quantity)
		detail.Available = item.Product.IsActive
	}
	return detail
}
