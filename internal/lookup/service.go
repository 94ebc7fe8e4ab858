package lookup

import (
	"context"
	"fmt"
	"strings"

	"uapibot/internal/jsontree"
	"uapibot/pkg/logger"
)

// RemoteClient 是上游查询 API 的抽象，便于测试时替换。
type RemoteClient interface {
	NetworkWhois(ctx context.Context, domain string) (*jsontree.Node, error)
	NetworkDNS(ctx context.Context, domain, recordType string) (*jsontree.Node, error)
	NetworkPing(ctx context.Context, host string) (*jsontree.Node, error)
}

// Service 把校验、限流执行、重试和格式化串成一条查询流程。
// 每个方法都保证返回一个终态字符串，不向上抛任何错误。
type Service struct {
	Client      RemoteClient
	Executor    *Executor
	Formatter   *Formatter
	MaxAttempts int
	Fallback    *WhoisFallback // 可为 nil，表示不启用直查回退
}

// Whois 查询域名 WHOIS 信息并返回格式化文本。
func (s *Service) Whois(ctx context.Context, domain string) string {
	if err := ValidateHost(domain); err != nil {
		return err.Error()
	}
	title := fmt.Sprintf("🔍 WHOIS 查询结果 (%s):", domain)

	node, lerr := s.Executor.DoWithRetry(ctx, func(ctx context.Context) (*jsontree.Node, error) {
		return s.Client.NetworkWhois(ctx, domain)
	}, s.MaxAttempts)
	if lerr != nil {
		if lerr.Category == CategoryRemote && s.Fallback != nil {
			if text, ferr := s.Fallback.Lookup(ctx, domain); ferr == nil {
				logger.Module("Lookup").Infow("上游接口失败，使用注册局直查结果", "domain", domain)
				return title + "\n" + text
			} else {
				logger.Module("Lookup").Warnw("注册局直查也失败", "domain", domain, "error", ferr)
			}
		}
		return lerr.Message
	}
	return s.Formatter.Render(node, title)
}

// DNS 查询域名解析记录并返回格式化文本。
// recordType 为空时默认 A；标题保留调用方给出的写法，实际查询用规范化大写。
func (s *Service) DNS(ctx context.Context, domain, recordType string) string {
	if strings.TrimSpace(recordType) == "" {
		recordType = "A"
	}
	if err := ValidateHost(domain); err != nil {
		return err.Error()
	}
	canonical, err := CanonicalRecordType(recordType)
	if err != nil {
		return err.Error()
	}
	title := fmt.Sprintf("🌐 DNS 解析记录 (%s - %s):", domain, recordType)

	node, lerr := s.Executor.DoWithRetry(ctx, func(ctx context.Context) (*jsontree.Node, error) {
		return s.Client.NetworkDNS(ctx, domain, canonical)
	}, s.MaxAttempts)
	if lerr != nil {
		return lerr.Message
	}
	return s.Formatter.Render(node, title)
}

// Ping 检测主机连通性并返回格式化文本。
func (s *Service) Ping(ctx context.Context, host string) string {
	if err := ValidateHost(host); err != nil {
		return err.Error()
	}
	title := fmt.Sprintf("📶 Ping 检测结果 (%s):", host)

	node, lerr := s.Executor.DoWithRetry(ctx, func(ctx context.Context) (*jsontree.Node, error) {
		return s.Client.NetworkPing(ctx, host)
	}, s.MaxAttempts)
	if lerr != nil {
		return lerr.Message
	}
	return s.Formatter.Render(node, title)
}
