// Package sanitize 清理用户输入中的 HTML，防止 XSS
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict = bluemonday.StrictPolicy()
	ugc    = bluemonday.UGCPolicy()
)

// Text 去掉全部标签，用于聊天、留言、标题等纯文本字段
// 结果按原文存储，& ' " < 等字符不转义，由展示端负责转义
func Text(input string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(input)))
}

// RichText 保留安全的排版标签，用于拼单描述和举报描述
// 结果是可直接渲染的 HTML 片段
func RichText(input string) string {
	return strings.TrimSpace(ugc.Sanitize(input))
}
