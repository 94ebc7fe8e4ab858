package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"uapibot/config"
	"uapibot/internal/app"
	"uapibot/internal/lookup"
	"uapibot/internal/uapi"
	"uapibot/pkg/logger"
	"uapibot/scheduler"
	"uapibot/telegram"
	"uapibot/tools"
)

func main() {
	// .env 仅用于本地开发，缺失不算错误
	_ = godotenv.Load()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	if err := logger.Init(env); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer logger.Sync()

	cfgPath := flag.String("config", "config.yaml", "配置文件路径")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Module("Main").Fatalf("加载配置失败: %v", err)
	}

	client := uapi.NewClient(cfg.Uapi.BaseURL)
	executor := &lookup.Executor{
		Gate:    lookup.NewGate(cfg.Uapi.MaxConcurrent),
		Timeout: time.Duration(float64(cfg.Uapi.Timeout) * float64(time.Second)),
	}
	var fallback *lookup.WhoisFallback
	if cfg.Uapi.WhoisFallback {
		fallback = &lookup.WhoisFallback{}
	}
	service := &lookup.Service{
		Client:      client,
		Executor:    executor,
		Formatter:   lookup.NewFormatter(cfg.KeyTranslations),
		MaxAttempts: cfg.Uapi.MaxAttempts,
		Fallback:    fallback,
	}

	sender, err := telegram.NewBotSender(cfg.Telegram.BotToken, cfg.Telegram.ChatID, 2, time.Second, 15*time.Second)
	if err != nil {
		logger.Module("Main").Fatalf("初始化 Telegram 失败: %v", err)
	}

	handler := telegram.NewCommandHandler(service, sender, cfg.Telegram.ChatID,
		telegram.NewUserRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst))

	application := &app.App{
		Handler:   handler,
		Sender:    sender,
		Service:   service,
		Registry:  tools.NewRegistry(tools.NetworkTools(service)...),
		Scheduler: scheduler.NewDailyScheduler(),
		Probe:     cfg.Probe,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Module("Main").Errorf("运行结束: %v", err)
	}
}
