package service

import (
	"errors"

	"namaste_cart/internal/domain/product/model"
	"namaste_cart/internal/domain/product/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

// ProductInput 商品创建/更新输入
type ProductInput struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Image       string
	Categories  []string
	Tags        []string
	StockCount  int
}

// ProductService 商品服务接口
type ProductService interface {
	List(filter repository.ListFilter) ([]model.Product, int64, error)
	Get(id string) (*model.Product, error)
	Create(input ProductInput) (*model.Product, error)
	Update(id string, input ProductInput) (*model.Product, error)
	Delete(id string) error
}

type productService struct {
	repo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

// List 查询商品列表
func (s *productService) List(filter repository.ListFilter) ([]model.Product, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 10
	}
	return s.repo.List(filter)
}

// Get 获取单个商品
func (s *productService) Get(id string) (*model.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// Create 创建商品（管理员）
func (s *productService) Create(input ProductInput) (*model.Product, error) {
	product := &model.Product{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
		Categories:  input.Categories,
		Tags:        input.Tags,
		StockCount:  input.StockCount,
		InStock:     input.StockCount > 0,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update 更新商品（管理员）
func (s *productService) Update(id string, input ProductInput) (*model.Product, error) {
	product, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	product.Title = input.Title
	product.Description = input.Description
	product.Price = input.Price
	product.Image = input.Image
	product.Categories = input.Categories
	product.Tags = input.Tags
	product.StockCount = input.StockCount
	product.InStock = input.StockCount > 0

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品（管理员）
func (s *productService) Delete(id string) error {
	product, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(product)
}
