// Package tools 把查询核心暴露为 LLM 代理可调用的函数。
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Tool 是一个可被 LLM 代理调用的函数。
type Tool interface {
	// Name 返回工具的唯一标识。
	Name() string

	// Description 返回给 LLM 看的功能说明。
	Description() string

	// Schema 返回参数的 JSON Schema。
	Schema() map[string]any

	// Call 用原始 JSON 参数执行工具，返回给模型的文本结果。
	Call(ctx context.Context, raw json.RawMessage) (string, error)
}

// Registry 保存已注册的工具。
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	for _, t := range tools {
		r.Register(t)
	}
	return r
}

func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.Name()] = t
}

func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// List 按名称排序返回所有工具。
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Dispatch 按名称调用工具。
func (r *Registry) Dispatch(ctx context.Context, name string, raw json.RawMessage) (string, error) {
	t, ok := r.Get(name)
	if !ok {
		return "", fmt.Errorf("未注册的工具: %s", name)
	}
	return t.Call(ctx, raw)
}
