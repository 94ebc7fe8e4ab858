package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"uapibot/telegram"
)

// NetworkTools 返回与聊天命令同源的三个查询工具。
func NetworkTools(service telegram.LookupService) []Tool {
	return []Tool{
		&WhoisTool{Service: service},
		&DNSTool{Service: service},
		&PingTool{Service: service},
	}
}

// WhoisTool 查询域名 WHOIS 信息。
type WhoisTool struct {
	Service telegram.LookupService
}

func (t *WhoisTool) Name() string { return "get_whois" }

func (t *WhoisTool) Description() string {
	return "查询域名 WHOIS 注册信息，返回注册商、注册与过期日期、DNS 服务器等。"
}

func (t *WhoisTool) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"domain": map[string]any{
				"type":        "string",
				"description": "域名，例如 google.com",
			},
		},
		"required": []string{"domain"},
	}
}

func (t *WhoisTool) Call(ctx context.Context, raw json.RawMessage) (string, error) {
	var args struct {
		Domain string `json:"domain"`
	}
	if err := json.Unmarshal(raw, &args); err != nil {
		return "", fmt.Errorf("解析参数失败: %w", err)
	}
	if args.Domain == "" {
		return "", fmt.Errorf("缺少必需参数 domain")
	}
	return t.Service.Whois(ctx, args.Domain), nil
}

// DNSTool 查询域名解析记录。
type DNSTool struct {
	Service telegram.LookupService
}

func (t *DNSTool) Name() string { return "get_dns" }

func (t *DNSTool) Description() string {
	return "查询域名 DNS 解析记录，支持 A、AAAA、CNAME、MX、TXT、NS 等类型，默认 A。"
}

func (t *DNSTool) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"domain": map[string]any{
				"type":        "string",
				"description": "域名，例如 cn.bing.com",
			},
			"record_type": map[string]any{
				"type":        "string",
				"description": "记录类型，例如 A、CNAME、MX、TXT、NS、AAAA，默认 A",
			},
		},
		"required": []string{"domain"},
	}
}

func (t *DNSTool) Call(ctx context.Context, raw json.RawMessage) (string, error) {
	var args struct {
		Domain     string `json:"domain"`
		RecordType string `json:"record_type"`
	}
	if err := json.Unmarshal(raw, &args); err != nil {
		return "", fmt.Errorf("解析参数失败: %w", err)
	}
	if args.Domain == "" {
		return "", fmt.Errorf("缺少必需参数 domain")
	}
	return t.Service.DNS(ctx, args.Domain, args.RecordType), nil
}

// PingTool 检测主机连通性。
type PingTool struct {
	Service telegram.LookupService
}

func (t *PingTool) Name() string { return "ping_host" }

func (t *PingTool) Description() string {
	return "Ping 主机检测连通性，返回 IP、归属地、丢包率等。"
}

func (t *PingTool) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"host": map[string]any{
				"type":        "string",
				"description": "域名或 IP 地址",
			},
		},
		"required": []string{"host"},
	}
}

func (t *PingTool) Call(ctx context.Context, raw json.RawMessage) (string, error) {
	var args struct {
		Host string `json:"host"`
	}
	if err := json.Unmarshal(raw, &args); err != nil {
		return "", fmt.Errorf("解析参数失败: %w", err)
	}
	if args.Host == "" {
		return "", fmt.Errorf("缺少必需参数 host")
	}
	return t.Service.Ping(ctx, args.Host), nil
}
