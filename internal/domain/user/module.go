package user

import (
	"namaste_cart/internal/domain/user/handler"
	"namaste_cart/internal/domain/user/repository"
	"namaste_cart/internal/domain/user/service"
	"namaste_cart/internal/pkg/mailer"
	"namaste_cart/internal/pkg/middleware"
	"namaste_cart/internal/pkg/otp"
	"namaste_cart/internal/pkg/registry"
	"namaste_cart/internal/pkg/worker"

	"github.com/gin-gonic/gin"
)

// UserModule 用户模块
type UserModule struct{}

func init() {
	// 自动注册模块
	registry.Register(&UserModule{})
}

func (m *UserModule) Name() string {
	return "user"
}

func (m *UserModule) Priority() int {
	// 用户模块优先级最高，其他模块依赖它
	return 1
}

func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	userRepo := repository.NewUserRepository(ctx.DB)
	otpService := otp.NewOTPService(ctx.Redis)

	mailPool := worker.NewMailPool(mailer.NewSMTPMailer(), 4, 256)
	mailPool.Start()

	userService := service.NewUserService(userRepo, otpService, ctx.Cache, mailPool, service.NewGoogleClient())
	userHandler := handler.NewUserHandler(userService)

	// 2. 路由注册
	setupRoutes(ctx.Router, userHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.UserHandler) {
	// 公开路由
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/google", h.GoogleLogin)
		authGroup.POST("/otp", middleware.OTPRateLimitMiddleware(), h.SendOTP)
		authGroup.POST("/otp/verify", h.VerifyOTP)
		authGroup.POST("/password/otp", middleware.OTPRateLimitMiddleware(), h.SendPasswordResetOTP)
		authGroup.POST("/password/reset", h.ResetPassword)
	}

	// 受保护的路由
	userGroup := r.Group("/users")
	userGroup.Use(middleware.AuthMiddleware())
	{
		userGroup.GET("/me", h.Me)
		userGroup.PUT("/me", h.UpdateMe)
	}
}
