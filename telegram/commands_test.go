package telegram

import (
	"context"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"
)

type captureSender struct {
	msgs    chan string
	reports chan [2]string
}

func newCaptureSender() *captureSender {
	return &captureSender{
		msgs:    make(chan string, 8),
		reports: make(chan [2]string, 8),
	}
}

func (c *captureSender) Send(ctx context.Context, msg string) error {
	c.msgs <- msg
	return nil
}

func (c *captureSender) SendReport(ctx context.Context, header, body string) error {
	c.reports <- [2]string{header, body}
	return nil
}

func (c *captureSender) StartListener(ctx context.Context, handleMessage func(msg *tgbotapi.Message)) error {
	<-ctx.Done()
	return nil
}

type fakeService struct{}

func (fakeService) Whois(ctx context.Context, domain string) string { return "whois:" + domain }
func (fakeService) DNS(ctx context.Context, domain, recordType string) string {
	return "dns:" + domain + ":" + recordType
}
func (fakeService) Ping(ctx context.Context, host string) string { return "ping:" + host }

func command(text string) *tgbotapi.Message {
	cmd := text
	if idx := strings.Index(text, " "); idx != -1 {
		cmd = text[:idx]
	}
	return &tgbotapi.Message{
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
		Chat:     &tgbotapi.Chat{ID: 1},
		From:     &tgbotapi.User{ID: 42},
	}
}

func recvText(t *testing.T, ch chan string) string {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("没有收到消息")
		return ""
	}
}

func recvReport(t *testing.T, ch chan [2]string) [2]string {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(time.Second):
		t.Fatal("没有收到查询报告")
		return [2]string{}
	}
}

func TestHandleWhoisCommand(t *testing.T) {
	sender := newCaptureSender()
	h := NewCommandHandler(fakeService{}, sender, 0, nil)

	h.HandleMessage(command("/whois example.com"))

	report := recvReport(t, sender.reports)
	require.Equal(t, "Whois查询结果", report[0])
	require.Equal(t, "whois:example.com", report[1])
}

func TestHandleWhoisMissingArgument(t *testing.T) {
	sender := newCaptureSender()
	h := NewCommandHandler(fakeService{}, sender, 0, nil)

	h.HandleMessage(command("/whois"))

	msg := recvText(t, sender.msgs)
	require.Contains(t, msg, "请输入域名")
	require.Contains(t, msg, "/whois google.com")
}

func TestHandleDNSCommandCaseInsensitive(t *testing.T) {
	sender := newCaptureSender()
	h := NewCommandHandler(fakeService{}, sender, 0, nil)

	// /DNS 与 /dns 等价
	h.HandleMessage(command("/DNS example.com mx"))

	require.Equal(t, "dns:example.com:mx", recvText(t, sender.msgs))
}

func TestHandleDNSWithoutRecordType(t *testing.T) {
	sender := newCaptureSender()
	h := NewCommandHandler(fakeService{}, sender, 0, nil)

	h.HandleMessage(command("/dns example.com"))

	require.Equal(t, "dns:example.com:", recvText(t, sender.msgs))
}

func TestHandlePingCommand(t *testing.T) {
	sender := newCaptureSender()
	h := NewCommandHandler(fakeService{}, sender, 0, nil)

	h.HandleMessage(command("/ping 8.8.8.8"))

	require.Equal(t, "ping:8.8.8.8", recvText(t, sender.msgs))
}

func TestHandleUapiHelp(t *testing.T) {
	sender := newCaptureSender()
	h := NewCommandHandler(fakeService{}, sender, 0, nil)

	h.HandleMessage(command("/uapi help"))

	msg := recvText(t, sender.msgs)
	require.Contains(t, msg, "/whois")
	require.Contains(t, msg, "/dns")
	require.Contains(t, msg, "/ping")
	require.Contains(t, msg, "get_whois")
}

func TestHandleIgnoresOtherChat(t *testing.T) {
	sender := newCaptureSender()
	h := NewCommandHandler(fakeService{}, sender, 1, nil)

	msg := command("/ping 8.8.8.8")
	msg.Chat = &tgbotapi.Chat{ID: 999}
	h.HandleMessage(msg)

	select {
	case got := <-sender.msgs:
		t.Fatalf("不应处理其他群组的消息，收到: %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHandleIgnoresNonCommand(t *testing.T) {
	sender := newCaptureSender()
	h := NewCommandHandler(fakeService{}, sender, 0, nil)

	h.HandleMessage(&tgbotapi.Message{Text: "just chatting", Chat: &tgbotapi.Chat{ID: 1}})

	select {
	case got := <-sender.msgs:
		t.Fatalf("普通消息不应触发回复，收到: %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHandleRateLimited(t *testing.T) {
	sender := newCaptureSender()
	h := NewCommandHandler(fakeService{}, sender, 0, NewUserRateLimiter(1, 1))

	h.HandleMessage(command("/ping 8.8.8.8"))
	require.Equal(t, "ping:8.8.8.8", recvText(t, sender.msgs))

	h.HandleMessage(command("/ping 8.8.8.8"))
	require.Contains(t, recvText(t, sender.msgs), "请求过于频繁")
}
