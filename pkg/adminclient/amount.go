package adminclient

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a money value as the admin API serialises it. The API emits
// decimals as JSON strings, but older payloads carried bare numbers, so
// unmarshalling accepts both.
type Amount struct {
	decimal.Decimal
}

// NewAmount builds an Amount from a decimal.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// UnmarshalJSON accepts "120.50", 120.5 and 120.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("parse amount %q: %w", data, err)
	}
	a.Decimal = d
	return nil
}

// String renders the amount with two decimal places, the way operators
// see money everywhere in the dashboard.
func (a Amount) String() string {
	return a.StringFixed(2)
}
