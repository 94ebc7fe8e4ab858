// Package jsontree 将任意 JSON 解析为保留键序的无类型树。
// 上游 API 返回的结构不固定，只能按原样递归处理；
// encoding/json 的 map 会丢失键序，这里用 token 流自己建树。
package jsontree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

type Kind int

const (
	Empty Kind = iota // JSON null
	Scalar
	Mapping
	Sequence
)

// Field 是 Mapping 的一个键值对，切片顺序即原始 JSON 中的出现顺序。
type Field struct {
	Key   string
	Value *Node
}

// Node 是解析后的一个 JSON 值。
type Node struct {
	Kind   Kind
	Text   string  // Scalar 的文本形式（数字保留原始字面量）
	Fields []Field // Mapping
	Items  []*Node // Sequence
}

// Parse 解析一段 JSON。
func Parse(data []byte) (*Node, error) {
	return Decode(bytes.NewReader(data))
}

// Decode 从 r 中解析一个 JSON 值。
func Decode(r io.Reader) (*Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	n, err := parseValue(dec)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func parseValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			n := &Node{Kind: Mapping}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("非法的对象键: %v", keyTok)
				}
				child, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				n.Fields = append(n.Fields, Field{Key: key, Value: child})
			}
			if _, err := dec.Token(); err != nil { // 消费 '}'
				return nil, err
			}
			return n, nil
		case '[':
			n := &Node{Kind: Sequence}
			for dec.More() {
				child, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				n.Items = append(n.Items, child)
			}
			if _, err := dec.Token(); err != nil { // 消费 ']'
				return nil, err
			}
			return n, nil
		}
		return nil, fmt.Errorf("意外的分隔符: %v", t)
	case string:
		return &Node{Kind: Scalar, Text: t}, nil
	case json.Number:
		return &Node{Kind: Scalar, Text: t.String()}, nil
	case bool:
		return &Node{Kind: Scalar, Text: strconv.FormatBool(t)}, nil
	case nil:
		return &Node{Kind: Empty}, nil
	default:
		return nil, fmt.Errorf("无法识别的 JSON token: %v", tok)
	}
}

// Lookup 在 Mapping 中按键查找，返回第一个匹配的值。
func (n *Node) Lookup(key string) (*Node, bool) {
	if n == nil || n.Kind != Mapping {
		return nil, false
	}
	for _, f := range n.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// IsBlank 判断整棵树是否没有可展示的内容。
func (n *Node) IsBlank() bool {
	if n == nil || n.Kind == Empty {
		return true
	}
	switch n.Kind {
	case Scalar:
		return n.Text == ""
	case Mapping:
		return len(n.Fields) == 0
	case Sequence:
		return len(n.Items) == 0
	}
	return false
}
