package flow

import (
	"fmt"
	"time"

	"github.com/safarshare/safar/internal/model"
	"github.com/safarshare/safar/internal/pricing"
	"github.com/safarshare/safar/internal/storage"
	"github.com/safarshare/safar/internal/trackid"
	"github.com/safarshare/safar/internal/validate"
	"github.com/safarshare/safar/internal/wizard"
)

// ItemDescriptions are the preset descriptions of popular item types.
var ItemDescriptions = map[string]string{
	"electronics": "Latest smartphone model, preferably Samsung or iPhone, with warranty",
	"clothing":    "Designer dress for wedding occasion, size M, preferably silk material",
	"groceries":   "Weekly groceries including fresh vegetables, fruits, and dairy products",
	"medical":     "Prescription medicines and general first aid supplies",
	"books":       "Latest bestseller novels and academic reference books",
	"home":        "Kitchen appliances and home decoration items",
	"sports":      "Sports equipment and fitness gear",
	"gifts":       "Birthday gift items suitable for different age groups",
}

// ItemTypes lists the item types in display order.
var ItemTypes = []string{"electronics", "clothing", "groceries", "medical", "books", "home", "sports", "gifts", "other"}

// TimePreferences are the accepted delivery windows.
var TimePreferences = []string{"morning", "afternoon", "evening", "anytime"}

// Shopping is the shopping delivery flow: a traveler buys an item in
// another city and brings it along.
func Shopping() *Definition {
	return &Definition{
		Name:          NameShopping,
		Title:         "Shopping delivery",
		Key:           storage.KeyShoppingRequests,
		LastIDKey:     storage.KeyLastShoppingID,
		Prefix:        "SS-",
		Scheme:        trackid.EpochTail8,
		Status:        model.StatusPending,
		Catalog:       model.KindShopper,
		RejectMessage: "Please fix all errors before submitting",
		steps:         shoppingSteps,
		defaults: func(now func() time.Time) validate.Values {
			return validate.Values{
				"quantity":      "1",
				"deliveryDate":  tomorrow(now),
				"paymentMethod": "cash",
			}
		},
		presets: func(v validate.Values) validate.Values {
			out := validate.Values{}
			if v.Blank("itemDescription") {
				if desc, ok := ItemDescriptions[v.Get("itemType")]; ok {
					out["itemDescription"] = desc
				}
			}
			return out
		},
		quote: func(v validate.Values) pricing.Quote {
			return pricing.Shopping(pricing.ShoppingInput{
				ItemPrice: float(v, "itemPrice"),
				Quantity:  integer(v, "quantity"),
			})
		},
		Acks:  []Acknowledgement{termsAck("I agree to the terms and conditions")},
		build: buildShopping,
		success: func(id string) string {
			return fmt.Sprintf("Shopping request submitted! Request ID: %s", id)
		},
	}
}

func shoppingSteps(now func() time.Time) []wizard.Step {
	return []wizard.Step{
		{
			Name:  "item",
			Title: "What to buy",
			Fields: []validate.Field{
				choice("itemType", "Item type", ItemTypes...),
				text("itemDescription", "Item description",
					validate.MinLength(10, "Please provide a more detailed description (minimum 10 characters)")),
				text("itemPrice", "Item budget per unit", validate.FloatRange(100, 10_000_000, "Minimum item budget is ₹ 100")),
				text("quantity", "Quantity", validate.IntRange(1, 10, "Quantity must be between 1 and 10")),
				optional("storePreference", "Preferred store"),
			},
		},
		{
			Name:  "delivery",
			Title: "Delivery",
			Fields: []validate.Field{
				text("shoppingCity", "City to shop in"),
				text("deliveryAddress", "Delivery address"),
				text("deliveryDate", "Delivery date", validate.NotPast(now, "Delivery date cannot be in the past")),
				{
					Name:    "timePreference",
					Label:   "Time preference",
					Input:   validate.InputChoice,
					Options: TimePreferences,
					Checks:  []validate.Check{validate.OneOf(TimePreferences...)},
				},
				flag("brandSpecific", "Brand specific"),
				flag("originalPackaging", "Original packaging"),
				flag("billRequired", "Bill required"),
			},
		},
		{
			Name:  "payment",
			Title: "Payment",
			Fields: []validate.Field{
				choice("paymentMethod", "Payment method", PaymentMethods...),
				optional("specialInstructions", "Special instructions"),
			},
		},
	}
}

func buildShopping(in Input, price *model.PriceBreakdown) (any, error) {
	v := in.Values
	return model.ShoppingRequest{
		ItemType:            v.Get("itemType"),
		ItemDescription:     v.Get("itemDescription"),
		ItemPrice:           float(v, "itemPrice"),
		Quantity:            max(integer(v, "quantity"), 1),
		StorePreference:     v.Get("storePreference"),
		ShoppingCity:        v.Get("shoppingCity"),
		DeliveryAddress:     v.Get("deliveryAddress"),
		DeliveryDate:        v.Get("deliveryDate"),
		TimePreference:      v.Get("timePreference"),
		BrandSpecific:       v.Bool("brandSpecific"),
		OriginalPackaging:   v.Bool("originalPackaging"),
		BillRequired:        v.Bool("billRequired"),
		PaymentMethod:       v.Get("paymentMethod"),
		SpecialInstructions: v.Get("specialInstructions"),
		SelectedShopper:     selectedID(in),
		TotalPrice:          total(price),
	}, nil
}
