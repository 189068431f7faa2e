package pricing

import (
	"math"

	"github.com/safarshare/safar/internal/model"
)

// Security levels.
const (
	SecurityStandard     = "standard"
	SecurityPremium      = "premium"
	SecurityConfidential = "confidential"
)

const (
	expressCharge   = 200
	trackingCharge  = 50
	documentFeeRate = 0.15
)

var securityCharges = map[string]int64{
	SecurityStandard:     0,
	SecurityPremium:      100,
	SecurityConfidential: 200,
}

// DocumentCities lists the cities covered by the document matrix.
var DocumentCities = []string{
	"karachi", "lahore", "islamabad", "rawalpindi", "faisalabad",
	"multan", "hyderabad", "peshawar", "quetta",
}

var documentMatrix = map[string]map[string]int64{
	"karachi": {
		"lahore": 500, "islamabad": 600, "rawalpindi": 600, "faisalabad": 450,
		"multan": 400, "hyderabad": 200, "peshawar": 700, "quetta": 800,
	},
	"lahore": {
		"karachi": 500, "islamabad": 300, "rawalpindi": 300, "faisalabad": 150,
		"multan": 250, "hyderabad": 450, "peshawar": 350, "quetta": 600,
	},
	"islamabad": {
		"karachi": 600, "lahore": 300, "rawalpindi": 100, "faisalabad": 250,
		"multan": 350, "hyderabad": 550, "peshawar": 200, "quetta": 650,
	},
	"rawalpindi": {
		"karachi": 600, "lahore": 300, "islamabad": 100, "faisalabad": 250,
		"multan": 350, "hyderabad": 550, "peshawar": 200, "quetta": 650,
	},
	"faisalabad": {
		"karachi": 450, "lahore": 150, "islamabad": 250, "rawalpindi": 250,
		"multan": 200, "hyderabad": 400, "peshawar": 300, "quetta": 550,
	},
	"multan": {
		"karachi": 400, "lahore": 250, "islamabad": 350, "rawalpindi": 350,
		"faisalabad": 200, "hyderabad": 350, "peshawar": 400, "quetta": 500,
	},
	"hyderabad": {
		"karachi": 200, "lahore": 450, "islamabad": 550, "rawalpindi": 550,
		"faisalabad": 400, "multan": 350, "peshawar": 600, "quetta": 700,
	},
	"peshawar": {
		"karachi": 700, "lahore": 350, "islamabad": 200, "rawalpindi": 200,
		"faisalabad": 300, "multan": 400, "hyderabad": 600, "quetta": 750,
	},
	"quetta": {
		"karachi": 800, "lahore": 600, "islamabad": 650, "rawalpindi": 650,
		"faisalabad": 550, "multan": 500, "hyderabad": 700, "peshawar": 750,
	},
}

// DocumentInput holds the values the document price depends on.
type DocumentInput struct {
	PickupCity    string
	DeliveryCity  string
	SecurityLevel string
	Express       bool
}

// DocumentBase looks a city pair up in the matrix.
func DocumentBase(pickup, delivery string) int64 {
	from, to := normalizeCity(pickup), normalizeCity(delivery)
	if from == "" || to == "" || from == to {
		return DefaultBase
	}
	if p, ok := documentMatrix[from][to]; ok {
		return p
	}
	return DefaultBase
}

// Document prices a document delivery. Unknown security levels cost
// nothing extra.
func Document(in DocumentInput) Quote {
	base := DocumentBase(in.PickupCity, in.DeliveryCity)
	security := securityCharges[normalizeCity(in.SecurityLevel)]
	var express int64
	if in.Express {
		express = expressCharge
	}
	subtotal := base + security + express + trackingCharge
	fee := int64(math.Round(float64(subtotal) * documentFeeRate))

	b := model.NewPriceBreakdown(CurrencyRupee,
		model.Charge{Name: ComponentBase, Label: "Base charge", Amount: base},
		model.Charge{Name: ComponentSecurity, Label: "Security charge", Amount: security},
		model.Charge{Name: ComponentExpress, Label: "Express delivery", Amount: express},
		model.Charge{Name: ComponentTracking, Label: "Tracking", Amount: trackingCharge},
		model.Charge{Name: ComponentPlatformFee, Label: "Platform fee", Amount: fee},
	)
	_, savings := CourierReference(b.Total)
	return Quote{Breakdown: b, Savings: savings}
}
