package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Money 统一金额类型（保留 2 位小数）
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal 从 decimal 创建金额
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// NewMoneyFromFloat 从 float 创建金额
func NewMoneyFromFloat(amount float64) Money {
	return Money{Decimal: decimal.NewFromFloat(amount).Round(2)}
}

// MarshalJSON 统一输出 2 位小数的字符串
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Decimal.Round(2).StringFixed(2))
}

// UnmarshalJSON 解析金额（字符串或数字）
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		m.Decimal = d.Round(2)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	m.Decimal = decimal.NewFromFloat(f).Round(2)
	return nil
}

// Value 用于数据库写入
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(2).Value()
}

// Scan 用于数据库读取
func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(2)
	return nil
}

// String 返回 2 位小数格式
func (m Money) String() string {
	return m.Decimal.Round(2).StringFixed(2)
}

// MoneyMap 币种到金额的映射列（currency_minimum_deposits 等）
// 写入宽容：值可以是数字或数字串，空白/非法值在归一时被丢弃。
type MoneyMap map[string]Money

// Value 实现 driver.Valuer 接口
func (m MoneyMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan 实现 sql.Scanner 接口
func (m *MoneyMap) Scan(value interface{}) error {
	if value == nil {
		*m = MoneyMap{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return nil
	}
	var loose map[string]interface{}
	if err := json.Unmarshal(raw, &loose); err != nil {
		return err
	}
	*m = NormalizeMoneyMap(loose)
	return nil
}

// NormalizeMoneyMap 把松散的 币种→数值 映射归一成 MoneyMap。
// 值统一按 CoerceFloat 解析；空白/nil 值的键被丢弃。
func NormalizeMoneyMap(loose map[string]interface{}) MoneyMap {
	result := make(MoneyMap, len(loose))
	for key, value := range loose {
		currency := strings.TrimSpace(key)
		if currency == "" {
			continue
		}
		if value == nil {
			continue
		}
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		result[currency] = NewMoneyFromFloat(CoerceFloat(value))
	}
	return result
}
