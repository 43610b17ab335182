package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Price is a currency amount exactly as the backend formats it ("200.00").
// It is never re-rendered on the client, so the string round-trips unchanged.
type Price string

func (p Price) Decimal() (decimal.Decimal, error) {
	if p == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(string(p))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse price %q: %w", string(p), err)
	}
	return d, nil
}

func (p Price) IsZero() bool {
	d, err := p.Decimal()
	return err == nil && d.IsZero()
}

func (p Price) String() string {
	return string(p)
}

func PriceFromDecimal(d decimal.Decimal) Price {
	return Price(d.StringFixed(2))
}
