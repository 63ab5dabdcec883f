package kernel

import (
	"bytes"
	"encoding/json"
	"fmt"

	"encomendas/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of fractional digits every Money value carries.
const MoneyPlaces = 2

// Money is an immutable fixed-point amount in the tenant's currency.
// Values are rounded half away from zero to two places on construction, so
// sums of Money never accumulate sub-cent noise. The zero value is 0.00.
type Money struct {
	amount decimal.Decimal
}

func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount.Round(MoneyPlaces)}
}

func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// MoneyFromString parses a decimal literal such as "48.90" or "12".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q: %w", s, err))
	}
	return NewMoney(d), nil
}

// MustMoney is MoneyFromString for literals known to be valid.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return NewMoney(m.amount.Add(other.amount))
}

func (m Money) Sub(other Money) Money {
	return NewMoney(m.amount.Sub(other.amount))
}

// Times multiplies by an integer quantity.
func (m Money) Times(quantity int) Money {
	return NewMoney(m.amount.Mul(decimal.NewFromInt(int64(quantity))))
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// String always renders two fractional digits: "24.00", "-1.50".
func (m Money) String() string {
	return m.amount.StringFixed(MoneyPlaces)
}

// MarshalJSON encodes the amount as a decimal string to keep precision.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts both "48.90" and 48.90.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = ZeroMoney()
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(s)
	}
	parsed, err := MoneyFromString(string(data))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Sum adds the given amounts, returning 0.00 for none.
func Sum(amounts ...Money) Money {
	total := ZeroMoney()
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
