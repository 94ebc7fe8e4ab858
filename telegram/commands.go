package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"uapibot/internal/lookup"
	"uapibot/pkg/logger"
)

// LookupService 是查询核心的抽象，每个方法返回一个终态字符串。
type LookupService interface {
	Whois(ctx context.Context, domain string) string
	DNS(ctx context.Context, domain, recordType string) string
	Ping(ctx context.Context, host string) string
}

// CommandHandler 处理群组中的查询命令。
type CommandHandler struct {
	Service LookupService
	Sender  Sender
	ChatID  int64
	Limiter *UserRateLimiter
}

func NewCommandHandler(service LookupService, sender Sender, chatID int64, limiter *UserRateLimiter) *CommandHandler {
	if sender == nil {
		sender = NoopSender{}
	}
	return &CommandHandler{Service: service, Sender: sender, ChatID: chatID, Limiter: limiter}
}

// HandleMessage 分发 Telegram 文本命令。
// 命令名不区分大小写，/DNS 与 /dns 等价；
// 每个命令在独立 goroutine 中处理，慢查询不会卡住消息循环。
func (h *CommandHandler) HandleMessage(msg *tgbotapi.Message) {
	if msg == nil || msg.Text == "" {
		return
	}
	if h.ChatID != 0 && msg.Chat != nil && msg.Chat.ID != h.ChatID {
		return
	}
	if !msg.IsCommand() {
		return
	}
	if h.Limiter != nil && msg.From != nil && !h.Limiter.Allow(msg.From.ID) {
		h.sendText("请求过于频繁，请稍后再试")
		return
	}

	args := strings.Fields(msg.CommandArguments())
	switch strings.ToLower(msg.Command()) {
	case "whois":
		go h.handleWhoisCommand(args)
	case "dns":
		go h.handleDNSCommand(args)
	case "ping":
		go h.handlePingCommand(args)
	case "uapi":
		go h.handleUapiCommand(args)
	}
}

func (h *CommandHandler) handleWhoisCommand(args []string) {
	if len(args) < 1 {
		h.sendText("请输入域名，例如：/whois google.com")
		return
	}
	result := h.Service.Whois(context.Background(), args[0])
	h.sendReport("Whois查询结果", result)
}

func (h *CommandHandler) handleDNSCommand(args []string) {
	if len(args) < 1 {
		h.sendText("请输入域名，例如：/dns cn.bing.com")
		return
	}
	recordType := ""
	if len(args) >= 2 {
		recordType = args[1]
	}
	result := h.Service.DNS(context.Background(), args[0], recordType)
	h.sendText(result)
}

func (h *CommandHandler) handlePingCommand(args []string) {
	if len(args) < 1 {
		h.sendText("请输入主机名或 IP，例如：/ping cn.bing.com")
		return
	}
	result := h.Service.Ping(context.Background(), args[0])
	h.sendText(result)
}

func (h *CommandHandler) handleUapiCommand(args []string) {
	if len(args) >= 1 && !strings.EqualFold(args[0], "help") {
		h.sendText("未知子命令，输入 /uapi help 查看用法")
		return
	}
	var sb strings.Builder
	sb.WriteString("📖 uapi 查询工具用法：\n")
	sb.WriteString("/whois <domain> — 查询域名 WHOIS 信息\n")
	sb.WriteString("/dns <domain> [记录类型] — 查询 DNS 解析记录，默认 A\n")
	sb.WriteString("/ping <host> — 检测主机连通性\n\n")
	sb.WriteString("支持的 DNS 记录类型：" + strings.Join(lookup.DNSRecordTypes, ", ") + "\n")
	sb.WriteString("对应的 LLM 工具：get_whois、get_dns、ping_host")
	h.sendText(sb.String())
}

func (h *CommandHandler) sendText(msg string) {
	if err := h.Sender.Send(context.Background(), msg); err != nil {
		logger.Module("Telegram").Warnw("发送消息失败", "error", err)
	}
}

func (h *CommandHandler) sendReport(header, body string) {
	if err := h.Sender.SendReport(context.Background(), header, body); err != nil {
		logger.Module("Telegram").Warnw("发送查询报告失败", "error", err)
	}
}
