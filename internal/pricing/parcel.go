package pricing

import (
	"math"

	"github.com/safarshare/safar/internal/model"
)

// DefaultParcelWeight is the weight estimated when none is given.
const DefaultParcelWeight = 2.5

const (
	weightRatePerKg  = 30
	fragileCharge    = 50
	perishableCharge = 75
	liquidCharge     = 25
	parcelFeeRate    = 0.15
)

var parcelRoutes = map[string]int64{
	"kandiaro-karachi":   400,
	"hyderabad-karachi":  250,
	"sukkur-karachi":     500,
	"kandiaro-hyderabad": 200,
}

// ParcelInput holds the values the parcel price depends on. A zero Weight
// means unset.
type ParcelInput struct {
	PickupCity   string
	DeliveryCity string
	Weight       float64
	Fragile      bool
	Perishable   bool
	Liquid       bool
}

// ParcelBase looks a city pair up in either direction.
func ParcelBase(pickup, delivery string) int64 {
	from, to := normalizeCity(pickup), normalizeCity(delivery)
	if from == "" || to == "" {
		return DefaultBase
	}
	if p, ok := parcelRoutes[from+"-"+to]; ok {
		return p
	}
	if p, ok := parcelRoutes[to+"-"+from]; ok {
		return p
	}
	return DefaultBase
}

// Parcel prices a parcel delivery.
func Parcel(in ParcelInput) Quote {
	base := ParcelBase(in.PickupCity, in.DeliveryCity)

	weight := in.Weight
	if weight <= 0 {
		weight = DefaultParcelWeight
	}
	var weightCharge int64
	if weight > 1 {
		weightCharge = int64(math.Floor((weight - 1) * weightRatePerKg))
	}

	var handling int64
	if in.Fragile {
		handling += fragileCharge
	}
	if in.Perishable {
		handling += perishableCharge
	}
	if in.Liquid {
		handling += liquidCharge
	}

	fee := int64(math.Round(float64(base+weightCharge+handling) * parcelFeeRate))

	b := model.NewPriceBreakdown(CurrencyPKR,
		model.Charge{Name: ComponentBase, Label: "Base price", Amount: base},
		model.Charge{Name: ComponentWeight, Label: "Weight charge", Amount: weightCharge},
		model.Charge{Name: ComponentHandling, Label: "Special handling", Amount: handling},
		model.Charge{Name: ComponentPlatformFee, Label: "Platform fee", Amount: fee},
	)
	_, savings := CourierReference(b.Total)
	return Quote{Breakdown: b, Savings: savings}
}
