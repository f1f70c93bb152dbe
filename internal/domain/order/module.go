package order

import (
	cartRepo "namaste_cart/internal/domain/cart/repository"
	cartService "namaste_cart/internal/domain/cart/service"
	"namaste_cart/internal/domain/order/gateway"
	"namaste_cart/internal/domain/order/handler"
	"namaste_cart/internal/domain/order/repository"
	"namaste_cart/internal/domain/order/service"
	"namaste_cart/internal/domain/order/strategy"
	productRepo "namaste_cart/internal/domain/product/repository"
	productService "namaste_cart/internal/domain/product/service"
	userRepo "namaste_cart/internal/domain/user/repository"
	"namaste_cart/internal/pkg/config"
	"namaste_cart/internal/pkg/middleware"
	"namaste_cart/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// OrderModule 订单模块
type OrderModule struct{}

func init() {
	registry.Register(&OrderModule{})
}

func (m *OrderModule) Name() string {
	return "order"
}

func (m *OrderModule) Priority() int {
	// 依赖用户、商品、购物车模块
	return 20
}

func (m *OrderModule) Init(ctx *registry.ModuleContext) error {
	cfg := config.GlobalConfig.Razorpay

	// 1. 支付网关与支付策略
	gw, err := gateway.NewRazorpayGateway(ctx.Metrics)
	if err != nil {
		return err
	}
	st, err := strategy.NewStrategy(cfg.Mode, gw)
	if err != nil {
		return err
	}

	// 2. 依赖注入
	repo := repository.NewOrderRepository(ctx.DB)
	products := productService.NewCachedProductService(
		productService.NewProductService(productRepo.NewProductRepository(ctx.DB)), ctx.Cache)
	carts := cartService.NewCartService(cartRepo.NewCartRepository(ctx.DB), products)
	users := userRepo.NewUserRepository(ctx.DB)

	svc := service.NewOrderService(repo, st, gw, products, carts, users, cfg.KeySecret)
	h := handler.NewOrderHandler(svc)

	// 3. 路由注册
	setupRoutes(ctx.Router, h)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.OrderHandler) {
	g := r.Group("/orders")
	g.Use(middleware.AuthMiddleware())
	{
		g.POST("", h.Create)
		g.GET("", h.List)
		g.POST("/verify", h.Verify)
		g.GET("/verify", h.VerifyLink)
		g.GET("/:id", h.Get)
		g.POST("/:id/cancel", h.Cancel)
	}

	admin := r.Group("/admin/orders")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.PUT("/:id/status", h.UpdateFulfillment)
	}
}
