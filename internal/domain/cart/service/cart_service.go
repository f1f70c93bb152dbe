package service

import (
	"errors"

	cartModel "namaste_cart/internal/domain/cart/model"
	"namaste_cart/internal/domain/cart/repository"
	productModel "namaste_cart/internal/domain/product/model"
	productService "namaste_cart/internal/domain/product/service"

	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("product not in cart")
	ErrInvalidQty       = errors.New("quantity must be at least 1")
)

// CartEntry 购物车条目及商品详情
type CartEntry struct {
	cartModel.CartItem
	Product *productModel.Product `json:"product"`
}

// CartService 购物车服务接口
type CartService interface {
	List(userID string) ([]CartEntry, error)
	Add(userID, productID string, qty int) error
	Remove(userID, productID string) error
	Clear(userID string) error
}

type cartService struct {
	repo     repository.CartRepository
	products productService.ProductService
}

// NewCartService 创建购物车服务
func NewCartService(repo repository.CartRepository, products productService.ProductService) CartService {
	return &cartService{repo: repo, products: products}
}

// List 获取购物车及商品详情
func (s *cartService) List(userID string) ([]CartEntry, error) {
	items, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	entries := make([]CartEntry, 0, len(items))
	for _, item := range items {
		product, err := s.products.Get(item.ProductID)
		if err != nil {
			// 商品已下架则跳过该条目
			continue
		}
		entries = append(entries, CartEntry{CartItem: item, Product: product})
	}
	return entries, nil
}

// Add 加购，商品必须存在
func (s *cartService) Add(userID, productID string, qty int) error {
	if qty < 1 {
		return ErrInvalidQty
	}
	if _, err := s.products.Get(productID); err != nil {
		return err
	}

	return s.repo.Upsert(&cartModel.CartItem{
		UserID:    userID,
		ProductID: productID,
		Qty:       qty,
	})
}

// Remove 移出购物车
func (s *cartService) Remove(userID, productID string) error {
	if err := s.repo.Remove(userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}
	return nil
}

// Clear 清空购物车
func (s *cartService) Clear(userID string) error {
	return s.repo.Clear(userID)
}
