package cart

import (
	"namaste_cart/internal/domain/cart/handler"
	"namaste_cart/internal/domain/cart/repository"
	"namaste_cart/internal/domain/cart/service"
	productRepo "namaste_cart/internal/domain/product/repository"
	productService "namaste_cart/internal/domain/product/service"
	"namaste_cart/internal/pkg/middleware"
	"namaste_cart/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// CartModule 购物车模块
type CartModule struct{}

func init() {
	registry.Register(&CartModule{})
}

func (m *CartModule) Name() string {
	return "cart"
}

func (m *CartModule) Priority() int {
	// 依赖商品模块
	return 15
}

func (m *CartModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	repo := repository.NewCartRepository(ctx.DB)
	products := productService.NewCachedProductService(
		productService.NewProductService(productRepo.NewProductRepository(ctx.DB)), ctx.Cache)
	svc := service.NewCartService(repo, products)
	h := handler.NewCartHandler(svc)

	// 2. 路由注册
	setupRoutes(ctx.Router, h)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.CartHandler) {
	g := r.Group("/cart")
	g.Use(middleware.AuthMiddleware())
	{
		g.GET("", h.List)
		g.POST("", h.Add)
		g.DELETE("", h.Remove)
	}
}
