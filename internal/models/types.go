package models

import (
	"database/sql/driver"
	"encoding/json"
	"strconv"
	"strings"
)

// JSON 类型定义，用于存储奖励配置等自由结构内容
type JSON map[string]interface{}

// Value 实现 driver.Valuer 接口
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan 实现 sql.Scanner 接口
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return nil
	}
}

// StringArray 字符串数组类型，用于存储 currencies、groups 等有序集合
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return nil
	}
}

// NormalizeStringList 把"切片或单个逗号分隔串"统一成干净的有序列表。
// 写入侧宽容：按逗号切分、去首尾空白、丢弃空项；保留插入顺序，不去重。
func NormalizeStringList(values ...string) StringArray {
	result := make(StringArray, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			result = append(result, trimmed)
		}
	}
	return result
}

// SplitTags 逗号串 ⇄ 数组便捷对的读取侧（tags 文本列专用）
func SplitTags(tags string) []string {
	return NormalizeStringList(tags)
}

// JoinTags 逗号串 ⇄ 数组便捷对的写入侧
func JoinTags(tags []string) string {
	cleaned := NormalizeStringList(tags...)
	return strings.Join(cleaned, ", ")
}

// CoerceFloat 宽容数值解析：nil/空白/非法数值一律得到 0。
// 旧数据里存在非数值串，读取侧必须归一而不是报错，这个行为有测试锁定。
func CoerceFloat(value interface{}) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0
		}
		return parsed
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0
		}
		return parsed
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// CoerceInt 宽容整数解析（截断小数部分）
func CoerceInt(value interface{}) int {
	return int(CoerceFloat(value))
}

// CoerceString 宽容字符串解析
func CoerceString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
