package models

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Money is a two-decimal fixed-point amount. It scans and stores like
// decimal.Decimal and always renders with two fractional digits.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{d.Round(2)}
}

func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Cents builds a Money from an integer number of cents.
func Cents(c int64) Money {
	return Money{decimal.New(c, -2)}
}

func (m Money) Add(o Money) Money {
	return Money{m.Decimal.Add(o.Decimal)}
}

func (m Money) Times(qty int) Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(int64(qty)))}
}

func (m Money) Equal(o Money) bool {
	return m.Decimal.Equal(o.Decimal)
}

// HasCents reports whether m fits in two fractional digits.
func (m Money) HasCents() bool {
	return m.Decimal.Equal(m.Decimal.Round(2))
}

func (m Money) String() string {
	return m.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.StringFixed(2))), nil
}
