package model

import (
	"fmt"
	"strings"
)

// Charge is one named component of a price.
type Charge struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// PriceBreakdown is a derived price: named components and their sum.
type PriceBreakdown struct {
	Currency   string   `json:"currency"`
	Components []Charge `json:"components"`
	Total      int64    `json:"total"`
}

// NewPriceBreakdown builds a breakdown whose total is the sum of charges.
func NewPriceBreakdown(currency string, charges ...Charge) PriceBreakdown {
	var total int64
	components := make([]Charge, 0, len(charges))
	for _, c := range charges {
		components = append(components, c)
		total += c.Amount
	}
	return PriceBreakdown{
		Currency:   currency,
		Components: components,
		Total:      total,
	}
}

// Component returns the amount of the named component.
func (p PriceBreakdown) Component(name string) (int64, bool) {
	for _, c := range p.Components {
		if c.Name == name {
			return c.Amount, true
		}
	}
	return 0, false
}

// Sum adds up the components.
func (p PriceBreakdown) Sum() int64 {
	var sum int64
	for _, c := range p.Components {
		sum += c.Amount
	}
	return sum
}

// Validate checks that the total matches its components.
func (p PriceBreakdown) Validate() error {
	if sum := p.Sum(); sum != p.Total {
		return fmt.Errorf("price total %d does not match components sum %d", p.Total, sum)
	}
	return nil
}

// FormatAmount renders an amount with the currency prefix, e.g. "pkr 545".
func FormatAmount(currency string, amount int64) string {
	if currency == "" {
		return fmt.Sprintf("%d", amount)
	}
	return fmt.Sprintf("%s %d", currency, amount)
}

// String renders the breakdown one component per line.
func (p PriceBreakdown) String() string {
	var b strings.Builder
	for _, c := range p.Components {
		fmt.Fprintf(&b, "%s: %s\n", c.Label, FormatAmount(p.Currency, c.Amount))
	}
	fmt.Fprintf(&b, "Total: %s", FormatAmount(p.Currency, p.Total))
	return b.String()
}
