package lookup

import (
	"context"
	"fmt"
	"strings"

	"github.com/likexian/whois"
	"github.com/openrdap/rdap"
)

// 回退结果的最大长度，超出截断，避免撑爆单条消息
const maxFallbackLength = 8000

// WhoisFallback 在上游 API 不可用时直接查询注册局。
// 先走 43 端口的 WHOIS，失败再尝试 RDAP。
type WhoisFallback struct{}

func (w *WhoisFallback) Lookup(ctx context.Context, domain string) (string, error) {
	text, whoisErr := w.rawWhois(ctx, domain)
	if whoisErr == nil && strings.TrimSpace(text) != "" {
		return truncate(strings.TrimSpace(text)), nil
	}

	text, rdapErr := w.rdapQuery(ctx, domain)
	if rdapErr != nil {
		if whoisErr != nil {
			return "", fmt.Errorf("whois 直查失败: %v; rdap 失败: %w", whoisErr, rdapErr)
		}
		return "", rdapErr
	}
	return truncate(text), nil
}

func (w *WhoisFallback) rawWhois(ctx context.Context, domain string) (string, error) {
	type result struct {
		data string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		data, err := whois.Whois(domain)
		ch <- result{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		return res.data, res.err
	}
}

func (w *WhoisFallback) rdapQuery(ctx context.Context, domain string) (string, error) {
	type result struct {
		data *rdap.Domain
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		client := &rdap.Client{}
		d, err := client.QueryDomain(domain)
		ch <- result{data: d, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.err != nil {
			return "", res.err
		}
		return formatRDAPDomain(res.data), nil
	}
}

func formatRDAPDomain(d *rdap.Domain) string {
	var sb strings.Builder
	sb.WriteString("🌐 域名: " + d.LDHName)
	if len(d.Status) > 0 {
		sb.WriteString("\n📊 状态: " + strings.Join(d.Status, ", "))
	}
	for _, ev := range d.Events {
		sb.WriteString(fmt.Sprintf("\n📅 %s: %s", ev.Action, ev.Date))
	}
	for _, ns := range d.Nameservers {
		sb.WriteString("\n🖥️ DNS服务器: " + ns.LDHName)
	}
	return sb.String()
}

func truncate(s string) string {
	if len(s) > maxFallbackLength {
		return s[:maxFallbackLength] + "\n\n[结果过长，已截断]"
	}
	return s
}
