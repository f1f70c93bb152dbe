package product

import (
	"namaste_cart/internal/domain/product/handler"
	"namaste_cart/internal/domain/product/repository"
	"namaste_cart/internal/domain/product/service"
	"namaste_cart/internal/pkg/middleware"
	"namaste_cart/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// ProductModule 商品模块
type ProductModule struct{}

func init() {
	registry.Register(&ProductModule{})
}

func (m *ProductModule) Name() string {
	return "product"
}

func (m *ProductModule) Priority() int {
	return 10
}

func (m *ProductModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	repo := repository.NewProductRepository(ctx.DB)
	svc := service.NewCachedProductService(service.NewProductService(repo), ctx.Cache)
	h := handler.NewProductHandler(svc)

	// 2. 路由注册
	setupRoutes(ctx.Router, h)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.ProductHandler) {
	g := r.Group("/products")

	// 公开读路由
	g.GET("", h.List)
	g.GET("/:id", h.Get)

	// 管理员写路由
	admin := g.Group("")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("", h.Create)
		admin.PUT("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
	}
}
