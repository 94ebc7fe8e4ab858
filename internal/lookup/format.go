package lookup

import (
	"fmt"
	"strings"

	"uapibot/internal/jsontree"
)

const noDataText = "暂无数据"

// 这些字段是 ping 的延迟统计或无展示价值的噪音，任何层级都不输出。
var suppressedKeys = map[string]struct{}{
	"min":      {},
	"avg":      {},
	"max":      {},
	"mdev":     {},
	"time":     {},
	"id":       {},
	"punycode": {},
}

// Formatter 把无类型 JSON 树渲染为带缩进的可读文本。
// Translations 的键为小写字段名，值为展示名；只读，构造后不再修改。
type Formatter struct {
	Translations map[string]string
}

// NewFormatter 合并内置翻译表与配置里的覆盖项。
func NewFormatter(overrides map[string]string) *Formatter {
	merged := make(map[string]string, len(defaultKeyTranslations)+len(overrides))
	for k, v := range defaultKeyTranslations {
		merged[strings.ToLower(k)] = v
	}
	for k, v := range overrides {
		merged[strings.ToLower(k)] = v
	}
	return &Formatter{Translations: merged}
}

// Render 在 title 下渲染一棵结果树。
// 顶层是带 code 字段的映射时按 code/msg/data 信封处理：
// code 字符串化后等于 "200" 视为成功并只渲染 data，
// 其余 code 输出一行失败诊断，不再深入其他字段。
func (f *Formatter) Render(n *jsontree.Node, title string) string {
	if n.IsBlank() {
		return title + "\n" + noDataText
	}

	if n.Kind == jsontree.Mapping {
		if code, ok := n.Lookup("code"); ok {
			if scalarText(code) == "200" {
				if data, ok := n.Lookup("data"); ok && !data.IsBlank() {
					return title + "\n" + f.renderTree(data, 0)
				}
				return title + "\n" + noDataText
			}
			msg := "未知错误"
			if m, ok := n.Lookup("msg"); ok && scalarText(m) != "" {
				msg = scalarText(m)
			}
			return fmt.Sprintf("❌ 请求失败: %s (Code: %s)", msg, scalarText(code))
		}
	}

	return title + "\n" + f.renderTree(n, 0)
}

func (f *Formatter) renderTree(n *jsontree.Node, indent int) string {
	var lines []string
	f.appendNode(&lines, n, indent)
	return strings.Join(lines, "\n")
}

func (f *Formatter) appendNode(lines *[]string, n *jsontree.Node, indent int) {
	spacing := strings.Repeat("  ", indent)
	switch n.Kind {
	case jsontree.Mapping:
		for _, field := range n.Fields {
			lower := strings.ToLower(field.Key)
			if _, drop := suppressedKeys[lower]; drop {
				continue
			}
			v := field.Value
			if v == nil || v.Kind == jsontree.Empty || (v.Kind == jsontree.Scalar && v.Text == "") {
				continue
			}
			label, ok := f.Translations[lower]
			if !ok {
				label = field.Key
			}
			if v.Kind == jsontree.Mapping || v.Kind == jsontree.Sequence {
				*lines = append(*lines, spacing+label+":")
				f.appendNode(lines, v, indent+1)
			} else {
				*lines = append(*lines, spacing+label+": "+v.Text)
			}
		}
	case jsontree.Sequence:
		for i, item := range n.Items {
			if item != nil && (item.Kind == jsontree.Mapping || item.Kind == jsontree.Sequence) {
				*lines = append(*lines, fmt.Sprintf("%s- 项目 %d:", spacing, i+1))
				f.appendNode(lines, item, indent+1)
			} else {
				*lines = append(*lines, spacing+"- "+scalarText(item))
			}
		}
	case jsontree.Scalar:
		*lines = append(*lines, spacing+n.Text)
	case jsontree.Empty:
		// null 顶层在 Render 中已处理，这里不输出
	}
}

func scalarText(n *jsontree.Node) string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case jsontree.Scalar:
		return n.Text
	case jsontree.Empty:
		return "null"
	default:
		return ""
	}
}
