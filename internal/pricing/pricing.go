// Package pricing holds the pure price calculators of every flow. Each
// calculator is recomputed from scratch on every call and returns whole
// rupee components whose sum is the total.
package pricing

import (
	"math"
	"strings"

	"github.com/safarshare/safar/internal/model"
)

// Currency prefixes as displayed by each flow.
const (
	CurrencyPKR   = "pkr"
	CurrencyRupee = "₹"
)

// Component names shared across flows.
const (
	ComponentBase        = "base"
	ComponentWeight      = "weight"
	ComponentHandling    = "handling"
	ComponentSecurity    = "security"
	ComponentExpress     = "express"
	ComponentTracking    = "tracking"
	ComponentService     = "service_fee"
	ComponentItemBudget  = "item_budget"
	ComponentCommission  = "commission"
	ComponentPlatformFee = "platform_fee"
)

// DefaultBase is the base charge when a city pair has no entry.
const DefaultBase = 300

// courierMarkup is how much more a traditional courier is assumed to cost.
const courierMarkup = 1.6

// Quote is a price breakdown plus the informational savings figure shown
// next to it. Savings is never a component.
type Quote struct {
	Breakdown model.PriceBreakdown
	Savings   int64
}

// CourierReference returns the estimated traditional courier price and
// the savings against total.
func CourierReference(total int64) (courier, savings int64) {
	courier = int64(math.Round(float64(total) * courierMarkup))
	return courier, courier - total
}

func normalizeCity(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
