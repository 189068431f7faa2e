package pricing

import (
	"math"

	"github.com/safarshare/safar/internal/model"
)

const (
	shoppingServiceFee = 250
	commissionRate     = 0.05
	minCommission      = 50
	shoppingFeeRate    = 0.10
	// ShoppingTravelSavings is the fixed travel cost a buyer avoids.
	ShoppingTravelSavings = 350
)

// ShoppingInput holds the values the shopping price depends on. A zero
// Quantity means one.
type ShoppingInput struct {
	ItemPrice float64
	Quantity  int
}

// Shopping prices a shopping delivery.
func Shopping(in ShoppingInput) Quote {
	qty := in.Quantity
	if qty <= 0 {
		qty = 1
	}
	price := in.ItemPrice
	if !finite(price) || price < 0 {
		price = 0
	}
	budget := price * float64(qty)
	commission := math.Max(budget*commissionRate, minCommission)
	fee := int64(math.Round((shoppingServiceFee + commission) * shoppingFeeRate))

	b := model.NewPriceBreakdown(CurrencyRupee,
		model.Charge{Name: ComponentService, Label: "Service fee", Amount: shoppingServiceFee},
		model.Charge{Name: ComponentItemBudget, Label: "Item budget", Amount: int64(math.Round(budget))},
		model.Charge{Name: ComponentCommission, Label: "Traveler commission", Amount: int64(math.Round(commission))},
		model.Charge{Name: ComponentPlatformFee, Label: "Platform fee", Amount: fee},
	)
	return Quote{Breakdown: b, Savings: ShoppingTravelSavings}
}
