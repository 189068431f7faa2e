package flow

import (
	"time"

	"github.com/safarshare/safar/internal/model"
	"github.com/safarshare/safar/internal/storage"
	"github.com/safarshare/safar/internal/trackid"
	"github.com/safarshare/safar/internal/validate"
	"github.com/safarshare/safar/internal/wizard"
)

// Subjects are the accepted contact subjects.
var Subjects = []string{"general", "booking", "payment", "safety", "feedback", "partnership"}

// Contact is the contact/support form. Messages are listed newest first.
func Contact() *Definition {
	return &Definition{
		Name:          NameContact,
		Title:         "Message",
		Key:           storage.KeyContactMessages,
		Prefix:        "MSG-",
		Scheme:        trackid.EpochMillis,
		Status:        model.StatusReceived,
		RejectMessage: "Please correct the highlighted fields",
		NewestFirst:   true,
		steps:         contactSteps,
		build: func(in Input, _ *model.PriceBreakdown) (any, error) {
			v := in.Values
			return model.ContactMessage{
				FullName:    v.Get("fullName"),
				ContactInfo: v.Get("contactInfo"),
				Subject:     v.Get("subject"),
				Message:     v.Get("message"),
			}, nil
		},
		success: func(string) string {
			return "Thank you! Your message has been sent. We'll get back to you soon."
		},
	}
}

func contactSteps(_ func() time.Time) []wizard.Step {
	return []wizard.Step{
		{
			Name:  "message",
			Title: "Contact us",
			Fields: []validate.Field{
				{Name: "fullName", Label: "Full name", Required: true, RequiredMsg: "Full name is required"},
				{
					Name:        "contactInfo",
					Label:       "Email or phone",
					Required:    true,
					RequiredMsg: "Email or phone number is required",
					Checks:      []validate.Check{validate.Contact("Please enter a valid email or phone number")},
				},
				{
					Name:        "subject",
					Label:       "Subject",
					Required:    true,
					RequiredMsg: "Please select a subject",
					Input:       validate.InputChoice,
					Options:     Subjects,
					Checks:      []validate.Check{validate.OneOf(Subjects...)},
				},
				{
					Name:        "message",
					Label:       "Message",
					Required:    true,
					RequiredMsg: "Message is required",
					Checks:      []validate.Check{validate.MinLength(10, "Message should be at least 10 characters long")},
				},
			},
		},
	}
}
