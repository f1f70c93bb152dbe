package logger

import (
	"log"
	"namaste_cart/internal/pkg/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log 全局日志实例，InitLogger 之前默认为空实现
var Log = zap.NewNop()

// InitLogger 初始化全局日志
// debug 模式下输出彩色控制台日志，生产模式输出 JSON
func InitLogger() {
	var (
		l   *zap.Logger
		err error
	)

	if config.GlobalConfig.App.Debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		l, err = cfg.Build()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	Log = l
	zap.ReplaceGlobals(l)
}

// Sync 刷新日志缓冲，进程退出前调用
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
