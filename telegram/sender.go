package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram 单条消息的长度上限
const maxMessageLength = 4096

// Sender 抽象出 Telegram 发送能力，便于替换和测试。
type Sender interface {
	Send(ctx context.Context, msg string) error
	// SendReport 以带标题的 Markdown 块发送查询报告，
	// 发送失败时退回纯文本重发。
	SendReport(ctx context.Context, header, body string) error
	StartListener(ctx context.Context, handleMessage func(msg *tgbotapi.Message)) error
}

type NoopSender struct{}

func (NoopSender) Send(ctx context.Context, msg string) error                { return nil }
func (NoopSender) SendReport(ctx context.Context, header, body string) error { return nil }
func (NoopSender) StartListener(ctx context.Context, handleMessage func(msg *tgbotapi.Message)) error {
	<-ctx.Done()
	return nil
}

// BotSender 实现了带简单重试和节流的 Telegram 发送能力。
type BotSender struct {
	bot        *tgbotapi.BotAPI
	chatID     int64
	retryTimes int
	rate       *time.Ticker
	timeout    time.Duration
}

func NewBotSender(token string, chatID int64, retryTimes int, rateInterval time.Duration, timeout time.Duration) (*BotSender, error) {
	if token == "" {
		return nil, errors.New("telegram token is empty")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &BotSender{
		bot:        bot,
		chatID:     chatID,
		retryTimes: retryTimes,
		rate:       time.NewTicker(rateInterval),
		timeout:    timeout,
	}, nil
}

func (s *BotSender) Send(ctx context.Context, msg string) error {
	m := tgbotapi.NewMessage(s.chatID, clip(msg))
	return s.deliver(ctx, m)
}

func (s *BotSender) SendReport(ctx context.Context, header, body string) error {
	md := tgbotapi.NewMessage(s.chatID, clip(fmt.Sprintf("*%s*\n```\n%s\n```", header, body)))
	md.ParseMode = tgbotapi.ModeMarkdown
	if err := s.deliver(ctx, md); err == nil {
		return nil
	}
	// Markdown 被拒（内容包含无法解析的标记等）时退回纯文本
	return s.Send(ctx, body)
}

func (s *BotSender) deliver(ctx context.Context, msg tgbotapi.MessageConfig) error {
	for attempt := 0; attempt <= s.retryTimes; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.rate.C:
			result := make(chan error, 1)
			sendCtx := ctx
			cancel := func() {}
			if s.timeout > 0 {
				sendCtx, cancel = context.WithTimeout(ctx, s.timeout)
			}

			go func() {
				_, err := s.bot.Send(msg)
				result <- err
			}()

			select {
			case <-sendCtx.Done():
				cancel()
				if attempt == s.retryTimes {
					return fmt.Errorf("发送 Telegram 超时: %w", sendCtx.Err())
				}
				continue
			case err := <-result:
				cancel()
				if err == nil {
					return nil
				}
				if attempt == s.retryTimes {
					return fmt.Errorf("发送 Telegram 失败: %w", err)
				}
				time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			}
		}
	}
	return nil
}

func (s *BotSender) StartListener(ctx context.Context, handleMessage func(msg *tgbotapi.Message)) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := s.bot.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case up := <-updates:
			if up.Message != nil && handleMessage != nil {
				handleMessage(up.Message)
			}
		}
	}
}

// clip 把超长消息截到 Telegram 的单条上限内。
// 截断点回退到字符边界，避免切出无效 UTF-8 导致整条消息被 API 拒收。
func clip(s string) string {
	if len(s) <= maxMessageLength {
		return s
	}
	cut := maxMessageLength - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
