// Package uapi 封装上游网络查询 API（uapis 风格的 code/msg/data 接口）。
package uapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"uapibot/internal/jsontree"
)

const DefaultBaseURL = "https://uapis.cn"

// 响应体日志最多保留的字节数
const maxBodySnippet = 512

// APIError 表示上游 API 在传输层面的失败：网络错误、非 2xx 状态码、响应体无法解析。
// 业务层面的非 200 code 不是 APIError，由格式化器渲染。
type APIError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("uapi 请求失败: %v", e.Err)
	}
	return fmt.Sprintf("uapi 返回异常状态 %d: %s", e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error { return e.Err }

// Client 是上游查询 API 的 HTTP 客户端。
// 不设置 http.Client 超时，超时与并发由调用方的执行器统一控制。
type Client struct {
	baseURL string
	httpc   *http.Client
}

func NewClient(baseURL string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
	}
}

// NetworkWhois 查询域名 WHOIS 信息。
func (c *Client) NetworkWhois(ctx context.Context, domain string) (*jsontree.Node, error) {
	params := url.Values{}
	params.Set("domain", domain)
	params.Set("format", "json")
	return c.get(ctx, "/api/v1/network/whois", params)
}

// NetworkDNS 查询域名解析记录，recordType 应为规范化后的大写类型。
func (c *Client) NetworkDNS(ctx context.Context, domain, recordType string) (*jsontree.Node, error) {
	params := url.Values{}
	params.Set("domain", domain)
	params.Set("type", recordType)
	return c.get(ctx, "/api/v1/network/dns", params)
}

// NetworkPing 检测主机连通性。
func (c *Client) NetworkPing(ctx context.Context, host string) (*jsontree.Node, error) {
	params := url.Values{}
	params.Set("host", host)
	return c.get(ctx, "/api/v1/network/ping", params)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*jsontree.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &APIError{Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &APIError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: snippet(body)}
	}

	node, err := jsontree.Parse(body)
	if err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: snippet(body), Err: err}
	}
	return node, nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxBodySnippet {
		s = s[:maxBodySnippet] + "..."
	}
	return s
}
