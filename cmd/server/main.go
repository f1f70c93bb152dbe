package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "namaste_cart/docs"
	_ "namaste_cart/internal/domain/cart"
	_ "namaste_cart/internal/domain/order"
	_ "namaste_cart/internal/domain/product"
	_ "namaste_cart/internal/domain/user"
	"namaste_cart/internal/pkg/config"
	"namaste_cart/internal/pkg/middleware"
	"namaste_cart/internal/pkg/registry"
	"namaste_cart/pkg/cache"
	"namaste_cart/pkg/database"
	"namaste_cart/pkg/logger"
	"namaste_cart/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title NamasteCart API
// @version 1.0
// @description 电商后端：用户、商品、购物车与订单支付
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. 加载配置
	config.LoadConfig()

	// 2. 初始化日志
	logger.InitLogger()
	defer logger.Sync()

	// 3. 初始化存储
	db := database.InitDatabase()
	rdb := database.InitRedis()
	cacheSvc := cache.NewRedisCache(rdb)

	// 4. 指标收集
	collector := metrics.NewCollector()

	// 5. HTTP 引擎与全局中间件
	gin.SetMode(config.GlobalConfig.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.RateLimitMiddleware())
	r.Use(collector.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 6. 运维端点
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 7. 按优先级初始化业务模块
	moduleCtx := &registry.ModuleContext{
		DB:      db,
		Redis:   rdb,
		Cache:   cacheSvc,
		Metrics: collector,
		Router:  r,
	}
	if err := registry.InitModules(moduleCtx); err != nil {
		logger.Log.Fatal("模块初始化失败", zap.Error(err))
	}

	// 8. 启动并等待退出信号
	srv := &http.Server{
		Addr:    ":" + config.GlobalConfig.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Log.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("收到退出信号，开始优雅关闭")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("优雅关闭失败", zap.Error(err))
	}
	logger.Log.Info("服务已退出")
}
