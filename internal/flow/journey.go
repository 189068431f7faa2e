package flow

import (
	"fmt"
	"time"

	"github.com/safarshare/safar/internal/model"
	"github.com/safarshare/safar/internal/storage"
	"github.com/safarshare/safar/internal/trackid"
	"github.com/safarshare/safar/internal/validate"
	"github.com/safarshare/safar/internal/wizard"
)

// Services a journey can offer.
var Services = []string{"carpool", "parcel", "documents", "shopping"}

// ServiceLabels are the display names of Services.
var ServiceLabels = map[string]string{
	"carpool":   "Carpool",
	"parcel":    "Parcel Delivery",
	"documents": "Document Delivery",
	"shopping":  "Shopping Delivery",
}

// PaymentLabels are the display names of PaymentMethods.
var PaymentLabels = map[string]string{
	"cash":      "Cash",
	"easypaisa": "EasyPaisa",
	"jazzcash":  "JazzCash",
	"bank":      "Bank Transfer",
}

// Journey is the journey posting flow: a traveler announces a trip and
// the services they offer along it.
func Journey() *Definition {
	return &Definition{
		Name:          NameJourney,
		Title:         "Journey",
		Key:           storage.KeyPostedJourneys,
		Prefix:        "JRN",
		Scheme:        trackid.Base36,
		Status:        model.StatusPosted,
		RejectMessage: "Please fill all required fields.",
		steps:         journeySteps,
		defaults: func(_ func() time.Time) validate.Values {
			return validate.Values{"payment": "cash", "seats": "3"}
		},
		Acks: []Acknowledgement{
			{
				Field:     "services",
				Label:     "Services",
				Message:   "Please select at least one service",
				Satisfied: func(in Input) bool { return len(in.Values.List("services")) > 0 },
			},
			termsAck("I agree to the terms and conditions"),
		},
		build: buildJourney,
		success: func(id string) string {
			return fmt.Sprintf("Journey Posted! Journey ID: %s", id)
		},
	}
}

func journeySteps(now func() time.Time) []wizard.Step {
	price := func(name, label string) validate.Field {
		return optional(name, label, validate.IntRange(0, 100_000, "Price must be between 0 and 100,000"))
	}
	return []wizard.Step{
		{
			Name:  "journey",
			Title: "Post a journey",
			Fields: []validate.Field{
				text("name", "Your name"),
				text("phone", "Phone (+92 XXX XXXXXXX)",
					validate.PakistaniPhone("Please enter a valid Pakistani phone number (+92 XXX XXXXXXX).")),
				text("vehicle", "Vehicle"),
				text("from", "From"),
				text("to", "To"),
				text("date", "Date", validate.NotPast(now, "Journey date cannot be in the past.")),
				text("time", "Departure time (HH:MM)", validate.Clock("Please enter a time as HH:MM")),
				text("seats", "Available seats", validate.IntRange(0, 8, "Seats must be between 0 and 8")),
				{
					Name:    "services",
					Label:   "Services offered",
					Help:    "comma separated: carpool, parcel, documents, shopping",
					Input:   validate.InputList,
					Options: Services,
					Checks:  []validate.Check{validate.EachOneOf(Services...)},
				},
				price("passengerPrice", "Price per passenger"),
				price("smallParcelPrice", "Small parcel price"),
				price("mediumParcelPrice", "Medium parcel price"),
				price("documentsPrice", "Documents price"),
				choice("payment", "Payment method", PaymentMethods...),
				optional("notes", "Notes"),
			},
		},
	}
}

func buildJourney(in Input, _ *model.PriceBreakdown) (any, error) {
	v := in.Values
	return model.JourneyPost{
		Name:              v.Get("name"),
		Phone:             v.Get("phone"),
		Vehicle:           v.Get("vehicle"),
		From:              v.Get("from"),
		To:                v.Get("to"),
		Date:              v.Get("date"),
		Time:              v.Get("time"),
		Seats:             integer(v, "seats"),
		Services:          v.List("services"),
		PassengerPrice:    int64(integer(v, "passengerPrice")),
		SmallParcelPrice:  int64(integer(v, "smallParcelPrice")),
		MediumParcelPrice: int64(integer(v, "mediumParcelPrice")),
		DocumentsPrice:    int64(integer(v, "documentsPrice")),
		Payment:           v.Get("payment"),
		Notes:             v.Get("notes"),
	}, nil
}
