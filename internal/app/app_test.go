package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"uapibot/config"
	"uapibot/telegram"
)

type stubService struct{}

func (stubService) Whois(ctx context.Context, domain string) string           { return "w" }
func (stubService) DNS(ctx context.Context, domain, recordType string) string { return "d" }
func (stubService) Ping(ctx context.Context, host string) string              { return "p:" + host }

type recordingSender struct {
	telegram.NoopSender
	sent chan string
}

func (r *recordingSender) Send(ctx context.Context, msg string) error {
	r.sent <- msg
	return nil
}

type immediateScheduler struct{}

func (immediateScheduler) ScheduleDaily(ctx context.Context, hour, min int, job func()) {
	go job()
}

func TestRunRequiresDependencies(t *testing.T) {
	a := &App{}
	require.ErrorIs(t, a.Run(context.Background()), ErrMissingDependencies)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	a := &App{
		Handler: telegram.NewCommandHandler(stubService{}, telegram.NoopSender{}, 0, nil),
		Sender:  telegram.NoopSender{},
		Service: stubService{},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run 没有随 ctx 取消而退出")
	}
}

func TestRunFiresProbe(t *testing.T) {
	sender := &recordingSender{sent: make(chan string, 1)}
	a := &App{
		Handler:   telegram.NewCommandHandler(stubService{}, sender, 0, nil),
		Sender:    sender,
		Service:   stubService{},
		Scheduler: immediateScheduler{},
		Probe:     config.Probe{Enabled: true, Host: "uapis.cn"},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = a.Run(ctx) }()

	select {
	case msg := <-sender.sent:
		require.Contains(t, msg, "每日可用性探测")
		require.Contains(t, msg, "p:uapis.cn")
	case <-time.After(time.Second):
		t.Fatal("探测任务没有触发")
	}
}

var _ telegram.Sender = (*recordingSender)(nil)
