package app

import (
	"context"
	"errors"

	"uapibot/config"
	"uapibot/pkg/logger"
	"uapibot/telegram"
	"uapibot/tools"
)

var ErrMissingDependencies = errors.New("missing dependencies")

// Scheduler 负责按日触发探测任务。
type Scheduler interface {
	ScheduleDaily(ctx context.Context, hour, min int, job func())
}

// App 组装消息监听、命令分发、工具注册表和可用性探测。
type App struct {
	Handler   *telegram.CommandHandler
	Sender    telegram.Sender
	Service   telegram.LookupService
	Registry  *tools.Registry
	Scheduler Scheduler
	Probe     config.Probe
}

// Run 启动机器人并阻塞到 ctx 取消。
func (a *App) Run(ctx context.Context) error {
	if a.Handler == nil || a.Sender == nil || a.Service == nil {
		return ErrMissingDependencies
	}

	log := logger.Module("App")
	if a.Registry != nil {
		for _, t := range a.Registry.List() {
			log.Infof("已注册 LLM 工具: %s", t.Name())
		}
	}

	if a.Probe.Enabled && a.Scheduler != nil {
		a.Scheduler.ScheduleDaily(ctx, a.Probe.Hour, a.Probe.Minute, func() {
			log.Infof("开始每日可用性探测: %s", a.Probe.Host)
			result := a.Service.Ping(ctx, a.Probe.Host)
			if err := a.Sender.Send(ctx, "📡 每日可用性探测\n"+result); err != nil {
				log.Warnf("发送探测结果失败: %v", err)
			}
		})
	}

	return a.Sender.StartListener(ctx, a.Handler.HandleMessage)
}
