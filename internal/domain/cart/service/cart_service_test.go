package service

import (
	"testing"

	cartModel "namaste_cart/internal/domain/cart/model"
	productModel "namaste_cart/internal/domain/product/model"
	"namaste_cart/internal/domain/product/repository"
	productService "namaste_cart/internal/domain/product/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockCartRepository is a mock of CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) ListByUser(userID string) ([]cartModel.CartItem, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cartModel.CartItem), args.Error(1)
}

func (m *MockCartRepository) Upsert(item *cartModel.CartItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockCartRepository) Remove(userID, productID string) error {
	args := m.Called(userID, productID)
	return args.Error(0)
}

func (m *MockCartRepository) Clear(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockProductService is a mock of ProductService
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(filter repository.ListFilter) ([]productModel.Product, int64, error) {
	args := m.Called(filter)
	return args.Get(0).([]productModel.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductService) Get(id string) (*productModel.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*productModel.Product), args.Error(1)
}

func (m *MockProductService) Create(input productService.ProductInput) (*productModel.Product, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*productModel.Product), args.Error(1)
}

func (m *MockProductService) Update(id string, input productService.ProductInput) (*productModel.Product, error) {
	args := m.Called(id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*productModel.Product), args.Error(1)
}

func (m *MockProductService) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func testProduct(id string) *productModel.Product {
	p := &productModel.Product{
		Title:   "Test Product",
		Price:   decimal.NewFromInt(100),
		InStock: true,
	}
	p.ID = id
	return p
}

func TestCartAdd(t *testing.T) {
	t.Run("Adding an existing product upserts the item", func(t *testing.T) {
		repo := new(MockCartRepository)
		products := new(MockProductService)
		svc := NewCartService(repo, products)

		products.On("Get", "p1").Return(testProduct("p1"), nil)
		repo.On("Upsert", mock.AnythingOfType("*model.CartItem")).Return(nil)

		err := svc.Add("user-1", "p1", 2)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Unknown product is rejected", func(t *testing.T) {
		repo := new(MockCartRepository)
		products := new(MockProductService)
		svc := NewCartService(repo, products)

		products.On("Get", "missing").Return(nil, productService.ErrProductNotFound)

		err := svc.Add("user-1", "missing", 1)

		assert.ErrorIs(t, err, productService.ErrProductNotFound)
		repo.AssertNotCalled(t, "Upsert", mock.Anything)
	})

	t.Run("Quantity below one is rejected", func(t *testing.T) {
		repo := new(MockCartRepository)
		products := new(MockProductService)
		svc := NewCartService(repo, products)

		err := svc.Add("user-1", "p1", 0)

		assert.ErrorIs(t, err, ErrInvalidQty)
		products.AssertNotCalled(t, "Get", mock.Anything)
	})
}

func TestCartList(t *testing.T) {
	t.Run("Entries carry product details and skip missing products", func(t *testing.T) {
		repo := new(MockCartRepository)
		products := new(MockProductService)
		svc := NewCartService(repo, products)

		items := []cartModel.CartItem{
			{UserID: "user-1", ProductID: "p1", Qty: 2},
			{UserID: "user-1", ProductID: "gone", Qty: 1},
		}
		repo.On("ListByUser", "user-1").Return(items, nil)
		products.On("Get", "p1").Return(testProduct("p1"), nil)
		products.On("Get", "gone").Return(nil, productService.ErrProductNotFound)

		entries, err := svc.List("user-1")

		assert.NoError(t, err)
		assert.Len(t, entries, 1)
		assert.Equal(t, "p1", entries[0].ProductID)
		assert.NotNil(t, entries[0].Product)
	})
}

func TestCartRemove(t *testing.T) {
	t.Run("Removing an absent item maps to not found", func(t *testing.T) {
		repo := new(MockCartRepository)
		products := new(MockProductService)
		svc := NewCartService(repo, products)

		repo.On("Remove", "user-1", "p1").Return(gorm.ErrRecordNotFound)

		err := svc.Remove("user-1", "p1")

		assert.ErrorIs(t, err, ErrCartItemNotFound)
	})
}
