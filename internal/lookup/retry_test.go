package lookup

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"uapibot/internal/jsontree"
	"uapibot/internal/uapi"
)

func TestRetryTimeoutTwiceThenSuccess(t *testing.T) {
	backoff := 20 * time.Millisecond
	e := &Executor{Gate: NewGate(1), Timeout: 10 * time.Millisecond, Backoff: backoff}

	var calls int32
	op := func(ctx context.Context) (*jsontree.Node, error) {
		n := atomic.AddInt32(&calls, 1)
		if n <= 2 {
			time.Sleep(100 * time.Millisecond) // 前两次超时
		}
		return mustParse(t, `{"code":200,"data":{"domain":"a.com"}}`), nil
	}

	start := time.Now()
	node, lerr := e.DoWithRetry(context.Background(), op, 3)
	elapsed := time.Since(start)

	require.Nil(t, lerr)
	require.NotNil(t, node)
	require.Equal(t, int32(3), atomic.LoadInt32(&calls))
	// 两次退避等待：1 倍和 2 倍退避单位
	require.GreaterOrEqual(t, elapsed, 3*backoff)
}

func TestRetryExhaustsTimeouts(t *testing.T) {
	e := &Executor{Gate: NewGate(1), Timeout: 10 * time.Millisecond, Backoff: time.Millisecond}

	var calls int32
	_, lerr := e.DoWithRetry(context.Background(), func(ctx context.Context) (*jsontree.Node, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(100 * time.Millisecond)
		return nil, nil
	}, 3)

	require.NotNil(t, lerr)
	require.Equal(t, CategoryTimeout, lerr.Category)
	require.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRetryStopsOnRemoteError(t *testing.T) {
	e := &Executor{Gate: NewGate(1), Timeout: time.Second, Backoff: time.Millisecond}

	var calls int32
	_, lerr := e.DoWithRetry(context.Background(), func(ctx context.Context) (*jsontree.Node, error) {
		atomic.AddInt32(&calls, 1)
		return nil, &uapi.APIError{StatusCode: 500}
	}, 3)

	require.NotNil(t, lerr)
	require.Equal(t, CategoryRemote, lerr.Category)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls), "非超时失败不应重试")
}

func TestRetrySuccessFirstAttempt(t *testing.T) {
	e := &Executor{Gate: NewGate(1), Timeout: time.Second, Backoff: time.Millisecond}

	var calls int32
	node, lerr := e.DoWithRetry(context.Background(), func(ctx context.Context) (*jsontree.Node, error) {
		atomic.AddInt32(&calls, 1)
		return mustParse(t, `{}`), nil
	}, 3)

	require.Nil(t, lerr)
	require.NotNil(t, node)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRetryCancelledDuringBackoff(t *testing.T) {
	e := &Executor{Gate: NewGate(1), Timeout: 10 * time.Millisecond, Backoff: time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	var calls int32
	start := time.Now()
	_, lerr := e.DoWithRetry(ctx, func(ctx context.Context) (*jsontree.Node, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(100 * time.Millisecond)
		return nil, nil
	}, 3)

	require.NotNil(t, lerr)
	require.Equal(t, CategoryTimeout, lerr.Category)
	require.Less(t, time.Since(start), 500*time.Millisecond, "取消后不应继续等待退避")
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
