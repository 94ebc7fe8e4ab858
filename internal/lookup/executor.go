package lookup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"uapibot/internal/jsontree"
	"uapibot/internal/uapi"
	"uapibot/pkg/logger"
)

const (
	DefaultConcurrency = 10
	DefaultTimeout     = 10 * time.Second
)

// Gate 是进程级的并发闸门，限制同时在途的出站请求数。
type Gate struct {
	slots chan struct{}
}

func NewGate(capacity int) *Gate {
	if capacity <= 0 {
		capacity = DefaultConcurrency
	}
	return &Gate{slots: make(chan struct{}, capacity)}
}

func (g *Gate) acquire(ctx context.Context) error {
	select {
	case g.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *Gate) release() {
	<-g.slots
}

// Operation 是一次阻塞的上游调用。
type Operation func(ctx context.Context) (*jsontree.Node, error)

// Executor 用闸门和超时包裹一次上游调用。
// 零值字段在调用时回落到默认值。
type Executor struct {
	Gate    *Gate
	Timeout time.Duration
	Backoff time.Duration
}

type opResult struct {
	node *jsontree.Node
	err  error
}

// Do 执行一次上游调用：先占用闸门槽位，再把阻塞调用放到独立 goroutine 上，
// 等待结果或超时。超时后放弃等待，在途调用不保证被取消；
// 无论哪条退出路径都会释放槽位。
func (e *Executor) Do(ctx context.Context, op Operation) (*jsontree.Node, *LookupError) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if e.Gate != nil {
		if err := e.Gate.acquire(ctx); err != nil {
			return nil, &LookupError{Category: CategoryTimeout, Message: msgTimeout, Err: err}
		}
		defer e.Gate.release()
	}

	resCh := make(chan opResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				resCh <- opResult{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		node, err := op(ctx)
		resCh <- opResult{node: node, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-timer.C:
		logger.Module("Lookup").Warnw("查询超时", "timeout", timeout)
		return nil, &LookupError{Category: CategoryTimeout, Message: msgTimeout}
	case <-ctx.Done():
		return nil, &LookupError{Category: CategoryTimeout, Message: msgTimeout, Err: ctx.Err()}
	case res := <-resCh:
		if res.err != nil {
			return nil, classify(res.err)
		}
		return res.node, nil
	}
}

func classify(err error) *LookupError {
	log := logger.Module("Lookup")
	var apiErr *uapi.APIError
	if errors.As(err, &apiErr) {
		log.Errorw("上游接口错误", "error", err)
		return &LookupError{Category: CategoryRemote, Message: msgRemote, Err: err}
	}
	log.Errorw("未预期的内部错误", "error", err)
	return &LookupError{Category: CategoryInternal, Message: msgInternal, Err: err}
}
