package service

import (
	"context"
	"fmt"
	"time"

	"namaste_cart/internal/domain/product/model"
	"namaste_cart/internal/domain/product/repository"
	"namaste_cart/pkg/cache"
	"namaste_cart/pkg/logger"
)

// 缓存键常量
const (
	productCacheKeyPrefix = "product:"
	productCacheTTL       = time.Minute * 10
)

// CachedProductService 带缓存的商品服务
// 只缓存单品读取，列表查询条件组合太多不缓存
type CachedProductService struct {
	inner ProductService
	cache cache.CacheService
}

// NewCachedProductService 创建带缓存的商品服务
func NewCachedProductService(inner ProductService, cacheSvc cache.CacheService) ProductService {
	return &CachedProductService{inner: inner, cache: cacheSvc}
}

func productCacheKey(id string) string {
	return fmt.Sprintf("%s%s", productCacheKeyPrefix, id)
}

// invalidate 清除单品缓存
func (s *CachedProductService) invalidate(id string) {
	if err := s.cache.Delete(context.Background(), productCacheKey(id)); err != nil {
		logger.Log.Sugar().Warnf("failed to invalidate product cache %s: %v", id, err)
	}
}

func (s *CachedProductService) List(filter repository.ListFilter) ([]model.Product, int64, error) {
	return s.inner.List(filter)
}

// Get 获取单个商品（带缓存）
func (s *CachedProductService) Get(id string) (*model.Product, error) {
	ctx := context.Background()
	key := productCacheKey(id)

	var product model.Product
	if err := s.cache.Get(ctx, key, &product); err == nil {
		return &product, nil
	}

	// 缓存未命中，从数据库获取
	result, err := s.inner.Get(id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, result, productCacheTTL); err != nil {
		// 缓存失败不影响业务逻辑
		logger.Log.Sugar().Warnf("failed to cache product %s: %v", id, err)
	}
	return result, nil
}

func (s *CachedProductService) Create(input ProductInput) (*model.Product, error) {
	return s.inner.Create(input)
}

// Update 更新商品（带缓存失效）
func (s *CachedProductService) Update(id string, input ProductInput) (*model.Product, error) {
	product, err := s.inner.Update(id, input)
	if err != nil {
		return nil, err
	}
	s.invalidate(id)
	return product, nil
}

// Delete 删除商品（带缓存失效）
func (s *CachedProductService) Delete(id string) error {
	if err := s.inner.Delete(id); err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}
