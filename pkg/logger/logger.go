// Package logger 统一日志系统，基于 uber-go/zap。
package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	base  *zap.Logger
	sugar *zap.SugaredLogger
)

// Init 初始化全局 logger。
// env 为 "dev"/"development" 时使用彩色控制台输出，否则输出 JSON 并写入轮转日志文件。
func Init(env string) error {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.CallerKey = "caller"

	var core zapcore.Core
	if env == "dev" || env == "development" {
		devCfg := zap.NewDevelopmentEncoderConfig()
		devCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		devCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		core = zapcore.NewCore(
			zapcore.NewConsoleEncoder(devCfg),
			zapcore.Lock(os.Stderr),
			zapcore.DebugLevel,
		)
	} else {
		if err := os.MkdirAll("logs", 0o755); err != nil {
			log.Printf("警告: 无法创建日志目录: %v", err)
		}
		rotator := &lumberjack.Logger{
			Filename:   "logs/uapibot.log",
			MaxSize:    100, // MB
			MaxBackups: 30,
			MaxAge:     90, // 天
			Compress:   true,
			LocalTime:  true,
		}
		core = zapcore.NewTee(
			zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotator), zapcore.InfoLevel),
			zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.Lock(os.Stderr), zapcore.InfoLevel),
		)
	}

	l := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)

	base = l
	sugar = l.Sugar()

	// 重定向标准库 log 到 zap，兼容老代码
	stdLog := zap.NewStdLog(l)
	log.SetOutput(stdLog.Writer())
	log.SetFlags(0)

	return nil
}

// Module 返回带模块名的 logger。
// 用法: logger.Module("Telegram").Infof("...")
func Module(name string) *zap.SugaredLogger {
	if sugar == nil {
		return zap.NewExample().Sugar().Named(name)
	}
	return sugar.Named(name)
}

// Sync 刷新日志缓冲区，程序退出前调用。
func Sync() {
	if base != nil {
		_ = base.Sync()
	}
}
