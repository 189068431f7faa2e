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

// DocumentDescriptions are the preset descriptions per document type.
var DocumentDescriptions = map[string]string{
	"legal":       "Court documents, legal agreements, and attorney correspondence",
	"educational": "Degree certificates, transcripts, mark sheets, and educational records",
	"medical":     "Medical reports, prescriptions, test results, and health records",
	"financial":   "Bank statements, tax documents, financial agreements, and audit reports",
	"government":  "Government applications, official permits, and government correspondence",
	"contract":    "Business contracts, rental agreements, and legal agreements",
	"other":       "Personal documents and miscellaneous important papers",
}

// DocumentTypes lists the document types in display order.
var DocumentTypes = []string{"legal", "educational", "medical", "financial", "government", "contract", "other"}

// EnvelopeSizes are the accepted envelope sizes.
var EnvelopeSizes = []string{"a4", "legal", "a3", "box"}

// SecurityLevels are the accepted security levels.
var SecurityLevels = []string{pricing.SecurityStandard, pricing.SecurityPremium, pricing.SecurityConfidential}

// Document is the document delivery flow: sealed papers handed to a
// verified carrier.
func Document() *Definition {
	return &Definition{
		Name:          NameDocument,
		Title:         "Document delivery",
		Key:           storage.KeyDocumentRequests,
		LastIDKey:     storage.KeyLastDocumentID,
		Prefix:        "DOC-",
		Scheme:        trackid.EpochTail8,
		Status:        model.StatusPending,
		Catalog:       model.KindCarrier,
		RejectMessage: "Please fix all errors before submitting",
		steps:         documentSteps,
		defaults: func(now func() time.Time) validate.Values {
			return validate.Values{
				"securityLevel": pricing.SecurityStandard,
				"pickupDate":    tomorrow(now),
				"deliveryDate":  dayAfter(now),
				"paymentMethod": "cash",
			}
		},
		presets: func(v validate.Values) validate.Values {
			out := validate.Values{}
			if v.Blank("documentDescription") {
				if desc, ok := DocumentDescriptions[v.Get("documentType")]; ok {
					out["documentDescription"] = desc
				}
			}
			return out
		},
		quote: func(v validate.Values) pricing.Quote {
			return pricing.Document(pricing.DocumentInput{
				PickupCity:    v.Get("pickupCity"),
				DeliveryCity:  v.Get("deliveryCity"),
				SecurityLevel: v.Get("securityLevel"),
				Express:       v.Bool("expressDelivery"),
			})
		},
		Acks: []Acknowledgement{
			{
				Field:     FieldLegal,
				Label:     "I confirm the documents do not contain illegal items",
				Message:   "You must confirm that documents do not contain illegal items",
				Confirm:   true,
				Satisfied: func(in Input) bool { return in.Values.Bool(FieldLegal) },
			},
			termsAck("I agree to the terms and conditions"),
		},
		build: buildDocument,
		success: func(id string) string {
			return fmt.Sprintf("Document delivery booked! Tracking ID: %s", id)
		},
	}
}

func documentSteps(now func() time.Time) []wizard.Step {
	pastMsg := "Date cannot be in the past"
	return []wizard.Step{
		{
			Name:  "document",
			Title: "Document details",
			Fields: []validate.Field{
				choice("documentType", "Document type", DocumentTypes...),
				text("documentDescription", "Description",
					validate.MinLength(10, "Please provide a more detailed description (minimum 10 characters)")),
				choice("envelopeSize", "Envelope size", EnvelopeSizes...),
				choice("securityLevel", "Security level", SecurityLevels...),
				optional("weight", "Weight (kg)", validate.FloatRange(0.01, 5, "Weight must be between 0.01kg and 5kg")),
			},
		},
		{
			Name:  "route",
			Title: "Pickup and delivery",
			Fields: []validate.Field{
				choice("pickupCity", "Pickup city", pricing.DocumentCities...),
				{
					Name:     "deliveryCity",
					Label:    "Delivery city",
					Required: true,
					Input:    validate.InputChoice,
					Options:  pricing.DocumentCities,
					Checks: []validate.Check{
						validate.OneOf(pricing.DocumentCities...),
						validate.NotEqual("pickupCity", "Pickup and delivery cities must be different"),
					},
				},
				text("pickupDate", "Pickup date", validate.NotPast(now, pastMsg)),
				text("deliveryDate", "Delivery date",
					validate.NotPast(now, pastMsg),
					validate.NotBefore("pickupDate", "Delivery date cannot be before pickup date")),
				text("pickupAddress", "Pickup address"),
				text("deliveryAddress", "Delivery address"),
				text("recipientInfo", "Recipient name and phone",
					validate.MinLength(5, "Please provide recipient name and contact number")),
				flag("expressDelivery", "Express delivery"),
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

func buildDocument(in Input, price *model.PriceBreakdown) (any, error) {
	v := in.Values
	return model.DocumentRequest{
		DocumentType:        v.Get("documentType"),
		DocumentDescription: v.Get("documentDescription"),
		EnvelopeSize:        v.Get("envelopeSize"),
		SecurityLevel:       v.Get("securityLevel"),
		Weight:              float(v, "weight"),
		PickupCity:          v.Get("pickupCity"),
		DeliveryCity:        v.Get("deliveryCity"),
		PickupDate:          v.Get("pickupDate"),
		DeliveryDate:        v.Get("deliveryDate"),
		PickupAddress:       v.Get("pickupAddress"),
		DeliveryAddress:     v.Get("deliveryAddress"),
		RecipientInfo:       v.Get("recipientInfo"),
		ExpressDelivery:     v.Bool("expressDelivery"),
		PaymentMethod:       v.Get("paymentMethod"),
		SpecialInstructions: v.Get("specialInstructions"),
		SelectedCarrier:     selectedID(in),
		TotalPrice:          total(price),
	}, nil
}
