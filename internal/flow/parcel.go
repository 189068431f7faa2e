package flow

import (
	"errors"
	"fmt"
	"time"

	"github.com/safarshare/safar/internal/model"
	"github.com/safarshare/safar/internal/pricing"
	"github.com/safarshare/safar/internal/storage"
	"github.com/safarshare/safar/internal/trackid"
	"github.com/safarshare/safar/internal/validate"
	"github.com/safarshare/safar/internal/wizard"
)

// ParcelTypes are the accepted parcel categories.
var ParcelTypes = []string{"documents", "electronics", "clothing", "food", "gifts", "other"}

// Parcel is the parcel delivery flow: a traveler already on the route
// carries the parcel.
func Parcel() *Definition {
	return &Definition{
		Name:          NameParcel,
		Title:         "Parcel delivery",
		Key:           storage.KeyParcelRequests,
		LastIDKey:     storage.KeyLastParcelID,
		Prefix:        "SRC-",
		Scheme:        trackid.Random5,
		Status:        model.StatusPending,
		Catalog:       model.KindTraveler,
		RejectMessage: "Please fill all required fields correctly",
		steps:         parcelSteps,
		defaults: func(_ func() time.Time) validate.Values {
			return validate.Values{"paymentMethod": "cash"}
		},
		quote: func(v validate.Values) pricing.Quote {
			return pricing.Parcel(pricing.ParcelInput{
				PickupCity:   v.Get("pickupCity"),
				DeliveryCity: v.Get("deliveryCity"),
				Weight:       float(v, "weight"),
				Fragile:      v.Bool("fragile"),
				Perishable:   v.Bool("perishable"),
				Liquid:       v.Bool("liquid"),
			})
		},
		Acks: []Acknowledgement{
			{
				Field:     "selectedTraveler",
				Label:     "Traveler",
				Message:   "Please select a traveler for your parcel",
				Satisfied: func(in Input) bool { return in.Selected != nil },
			},
			termsAck("I agree to the terms and conditions"),
		},
		build: buildParcel,
		success: func(id string) string {
			return fmt.Sprintf("Parcel request submitted! Request ID: %s", id)
		},
	}
}

func parcelSteps(now func() time.Time) []wizard.Step {
	pastMsg := "Date cannot be in the past"
	return []wizard.Step{
		{
			Name:  "parcel",
			Title: "Parcel details",
			Fields: []validate.Field{
				choice("parcelType", "Parcel type", ParcelTypes...),
				text("weight", "Weight (kg)", validate.FloatRange(0.1, 20, "Weight must be between 0.1kg and 20kg")),
				optional("dimensions", "Dimensions (L x W x H cm)"),
				optional("parcelValue", "Declared value", validate.FloatRange(0, 10_000_000, "Declared value cannot be negative")),
				flag("fragile", "Fragile"),
				flag("perishable", "Perishable"),
				flag("liquid", "Contains liquid"),
			},
		},
		{
			Name:  "route",
			Title: "Route and dates",
			Fields: []validate.Field{
				text("pickupCity", "Pickup city"),
				text("deliveryCity", "Delivery city", validate.NotEqual("pickupCity", "Pickup and delivery cities must be different")),
				text("pickupDate", "Pickup date", validate.NotPast(now, pastMsg)),
				text("deliveryDate", "Delivery date", validate.NotPast(now, pastMsg)),
			},
		},
		{
			Name:  "payment",
			Title: "Payment",
			Fields: []validate.Field{
				choice("paymentMethod", "Payment method", PaymentMethods...),
				optional("instructions", "Special instructions"),
			},
		},
	}
}

func buildParcel(in Input, price *model.PriceBreakdown) (any, error) {
	if in.Selected == nil {
		return nil, errors.New("no traveler selected")
	}
	v := in.Values
	return model.ParcelRequest{
		ParcelType:       v.Get("parcelType"),
		Weight:           float(v, "weight"),
		Dimensions:       v.Get("dimensions"),
		ParcelValue:      float(v, "parcelValue"),
		Fragile:          v.Bool("fragile"),
		Perishable:       v.Bool("perishable"),
		Liquid:           v.Bool("liquid"),
		PickupCity:       v.Get("pickupCity"),
		DeliveryCity:     v.Get("deliveryCity"),
		PickupDate:       v.Get("pickupDate"),
		DeliveryDate:     v.Get("deliveryDate"),
		Instructions:     v.Get("instructions"),
		PaymentMethod:    v.Get("paymentMethod"),
		SelectedTraveler: in.Selected.ID,
		TotalPrice:       total(price),
	}, nil
}
