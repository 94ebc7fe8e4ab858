package telegram

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// UserRateLimiter 按用户维护令牌桶，限制单个用户的命令频率。
type UserRateLimiter struct {
	mu    sync.Mutex
	users map[int64]*rate.Limiter
	r     rate.Limit
	b     int
}

// 非法参数回落到的默认限速
const (
	defaultPerMinute = 20
	defaultBurst     = 5
)

func NewUserRateLimiter(perMinute, burst int) *UserRateLimiter {
	if perMinute <= 0 {
		perMinute = defaultPerMinute
	}
	if burst <= 0 {
		burst = defaultBurst
	}
	return &UserRateLimiter{
		users: make(map[int64]*rate.Limiter),
		r:     rate.Every(time.Minute / time.Duration(perMinute)),
		b:     burst,
	}
}

// Allow 判断该用户当前是否还允许发起命令。
func (l *UserRateLimiter) Allow(userID int64) bool {
	l.mu.Lock()
	limiter, ok := l.users[userID]
	if !ok {
		limiter = rate.NewLimiter(l.r, l.b)
		l.users[userID] = limiter
	}
	l.mu.Unlock()
	return limiter.Allow()
}
