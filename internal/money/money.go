// Package money represents monetary amounts as integer cents. Decimal
// arithmetic happens through shopspring/decimal; binary floats appear only
// when rendering JSON payloads for the charting client.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Cents is a monetary amount in integer minor units (1/100).
type Cents int64

var hundred = decimal.NewFromInt(100)

// Parse converts a decimal string such as "12.34" into cents.
// Amounts with more than two decimal places are rejected.
func Parse(s string) (Cents, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
		return 0, fmt.Errorf("amount %q has more than two decimal places", s)
	}
	return Cents(d.Mul(hundred).IntPart()), nil
}

// Decimal returns the amount as an exact decimal value.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// Float64 returns the amount in major units for JSON number payloads.
func (c Cents) Float64() float64 {
	return c.Decimal().InexactFloat64()
}

// String formats the amount with exactly two decimal places.
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// Percentage returns part/whole*100 rounded to one decimal place,
// or 0 when whole is not positive.
func Percentage(part, whole Cents) float64 {
	if whole <= 0 {
		return 0
	}
	return part.Decimal().Div(whole.Decimal()).Mul(hundred).Round(1).InexactFloat64()
}
