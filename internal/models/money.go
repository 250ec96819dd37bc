package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money 金额，所有运算与序列化都按分（2 位小数）舍入
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal 舍入到分
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// ParseMoney 例如 "12.5" -> 12.50
func ParseMoney(raw string) (Money, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Money{}, fmt.Errorf("parse money %q: %w", raw, err)
	}
	return NewMoneyFromDecimal(d), nil
}

func (m Money) Times(quantity int) Money {
	return NewMoneyFromDecimal(m.Mul(decimal.NewFromInt(int64(quantity))))
}

func (m Money) Plus(other Money) Money {
	return NewMoneyFromDecimal(m.Add(other.Decimal))
}

// EqualAmount 分位相同即相等
func (m Money) EqualAmount(other Money) bool {
	return m.Round(2).Equal(other.Round(2))
}

// String 固定两位小数
func (m Money) String() string {
	return m.StringFixed(2)
}

// MarshalJSON 输出字符串，避免客户端浮点误差
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON 同时接受 "12.50" 与 12.5
func (m *Money) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) || len(b) == 0 {
		return nil
	}
	raw := string(bytes.Trim(b, `"`))
	parsed, err := ParseMoney(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value 写库前舍入
func (m Money) Value() (driver.Value, error) {
	return m.Round(2).Value()
}

// Scan 读库后舍入
func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Round(2)
	return nil
}
