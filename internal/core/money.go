package core

import "github.com/shopspring/decimal"

func init() {
	// Balances and amounts go over the wire as bare JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Money is a decimal monetary amount. It marshals as a plain JSON number and
// accepts both numeric and string JSON input.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps a decimal value.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MoneyFromString parses a decimal amount from its string form.
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{Decimal: d}, nil
}

// Zero is the zero amount.
func Zero() Money {
	return Money{Decimal: decimal.Zero}
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{Decimal: m.Decimal.Add(other.Decimal)}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{Decimal: m.Decimal.Sub(other.Decimal)}
}

// Equal reports whether two amounts represent the same value, regardless of
// exponent.
func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}
