package lookup

import (
	"context"
	"time"

	"uapibot/internal/jsontree"
	"uapibot/pkg/logger"
)

const (
	DefaultMaxAttempts = 3
	defaultBackoff     = time.Second
)

// DoWithRetry 最多执行 maxAttempts 次 Do。
// 只有超时会重试；第 n 次超时后等待 n 个退避单位（1s、2s、…）再试，
// 最后一次失败不再等待。其他类别的失败立即原样返回。
func (e *Executor) DoWithRetry(ctx context.Context, op Operation, maxAttempts int) (*jsontree.Node, *LookupError) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	backoff := e.Backoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	var last *LookupError
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		node, lerr := e.Do(ctx, op)
		if lerr == nil {
			return node, nil
		}
		if lerr.Category != CategoryTimeout {
			return nil, lerr
		}
		last = lerr
		if attempt == maxAttempts {
			break
		}

		wait := time.Duration(attempt) * backoff
		logger.Module("Lookup").Warnw("查询超时，准备重试", "attempt", attempt, "wait", wait)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, &LookupError{Category: CategoryTimeout, Message: msgTimeout, Err: ctx.Err()}
		case <-timer.C:
		}
	}
	return nil, last
}
