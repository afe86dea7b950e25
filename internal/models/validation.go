package models

import (
	"sort"
	"strings"
)

// ValidationErrors 字段级校验错误集合（字段 → 消息列表）。
// 校验永远不 panic：规则失败只是向集合里追加一条消息。
type ValidationErrors map[string][]string

// Add 追加一条字段错误
func (e ValidationErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Any 是否存在错误
func (e ValidationErrors) Any() bool {
	return len(e) > 0
}

// Error 实现 error 接口，按字段名排序拼接
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(e))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e[field], "; "))
	}
	return strings.Join(parts, ", ")
}
