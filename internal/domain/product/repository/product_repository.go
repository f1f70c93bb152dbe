package repository

import (
	"fmt"

	"namaste_cart/internal/domain/product/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListFilter 商品列表筛选条件
type ListFilter struct {
	Category  string
	Tag       string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	InStock   *bool
	MinRating *float64
	SortBy    string
	SortDesc  bool
	Page      int
	Limit     int
}

type ProductRepository interface {
	Create(product *model.Product) error
	GetByID(id string) (*model.Product, error)
	List(filter ListFilter) ([]model.Product, int64, error)
	Update(product *model.Product) error
	Delete(product *model.Product) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepository) GetByID(id string) (*model.Product, error) {
	var product model.Product
	if err := r.db.Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// 允许排序的列，白名单防注入
var sortableColumns = map[string]bool{
	"price":      true,
	"rating":     true,
	"created_at": true,
	"title":      true,
}

// List 按条件分页查询商品
func (r *productRepository) List(filter ListFilter) ([]model.Product, int64, error) {
	q := r.db.Model(&model.Product{})

	if filter.Category != "" {
		// jsonb 包含查询
		q = q.Where("categories @> ?", fmt.Sprintf("[%q]", filter.Category))
	}
	if filter.Tag != "" {
		q = q.Where("tags @> ?", fmt.Sprintf("[%q]", filter.Tag))
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.InStock != nil {
		q = q.Where("in_stock = ?", *filter.InStock)
	}
	if filter.MinRating != nil {
		q = q.Where("rating >= ?", *filter.MinRating)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 排序
	sortBy := filter.SortBy
	if !sortableColumns[sortBy] {
		sortBy = "created_at"
	}
	order := sortBy + " ASC"
	if filter.SortDesc || filter.SortBy == "" {
		order = sortBy + " DESC"
	}

	offset := (filter.Page - 1) * filter.Limit

	var products []model.Product
	err := q.Order(order).Offset(offset).Limit(filter.Limit).Find(&products).Error
	return products, total, err
}

func (r *productRepository) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepository) Delete(product *model.Product) error {
	return r.db.Delete(product).Error
}
