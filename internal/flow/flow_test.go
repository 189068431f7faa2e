package flow

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safarshare/safar/internal/common"
	"github.com/safarshare/safar/internal/model"
	"github.com/safarshare/safar/internal/testutil"
	"github.com/safarshare/safar/internal/validate"
	"github.com/safarshare/safar/internal/wizard"
)

func newWizard(t *testing.T, d *Definition) *wizard.Wizard {
	t.Helper()
	w, err := d.NewWizard(testutil.NewFakeClock(testutil.FixedTime))
	require.NoError(t, err)
	return w
}

func fill(w *wizard.Wizard, values validate.Values) {
	for k, v := range values {
		w.Set(k, v)
	}
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		d, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, d.Name)
		assert.NotEmpty(t, d.Key)
		assert.NotEmpty(t, d.Prefix)
		assert.NotEmpty(t, d.Steps(testutil.FixedTime.Local), name)
	}

	_, err := Lookup("teleport")
	require.ErrorIs(t, err, common.ErrUnknownFlow)

	assert.Equal(t, []string{NameParcel, NameDocument, NameShopping, NameCommute, NameJourney, NameContact}, Names())
}

func TestDefinitions_Shape(t *testing.T) {
	tests := []struct {
		name      string
		steps     []string
		status    model.SubmissionStatus
		priced    bool
		delivery  bool
		catalog   model.CatalogKind
		ackFields []string
	}{
		{
			name: NameParcel, steps: []string{"parcel", "route", "payment"}, status: model.StatusPending,
			priced: true, delivery: true, catalog: model.KindTraveler,
			ackFields: []string{"selectedTraveler", FieldTerms},
		},
		{
			name: NameDocument, steps: []string{"document", "route", "payment"}, status: model.StatusPending,
			priced: true, delivery: true, catalog: model.KindCarrier,
			ackFields: []string{FieldLegal, FieldTerms},
		},
		{
			name: NameShopping, steps: []string{"item", "delivery", "payment"}, status: model.StatusPending,
			priced: true, delivery: true, catalog: model.KindShopper,
			ackFields: []string{FieldTerms},
		},
		{name: NameCommute, steps: []string{"schedule"}, status: model.StatusActive, ackFields: []string{"operatingDays"}},
		{name: NameJourney, steps: []string{"journey"}, status: model.StatusPosted, ackFields: []string{"services", FieldTerms}},
		{name: NameContact, steps: []string{"message"}, status: model.StatusReceived},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Lookup(tt.name)
			require.NoError(t, err)

			var steps []string
			for _, s := range d.Steps(testutil.FixedTime.Local) {
				steps = append(steps, s.Name)
			}
			assert.Equal(t, tt.steps, steps)
			assert.Equal(t, tt.status, d.Status)
			assert.Equal(t, tt.priced, d.Priced())
			assert.Equal(t, tt.delivery, d.Delivery())
			assert.Equal(t, tt.catalog, d.Catalog)

			var acks []string
			for _, a := range d.Acks {
				acks = append(acks, a.Field)
			}
			assert.Equal(t, tt.ackFields, acks)
		})
	}
}

func validParcel() validate.Values {
	return validate.Values{
		"parcelType":   "documents",
		"weight":       "2.5",
		"pickupCity":   "Kandiaro",
		"deliveryCity": "Karachi",
		"pickupDate":   "2024-12-16",
		"deliveryDate": "2024-12-17",
	}
}

func TestParcel_SubmitPath(t *testing.T) {
	d := Parcel()
	w := newWizard(t, d)
	assert.Equal(t, "cash", w.Get("paymentMethod"))

	require.Error(t, w.Next())
	fill(w, validParcel())
	assert.Nil(t, w.ValidateAll())

	in := Input{Values: w.Values()}
	errs := d.Acknowledge(in)
	require.Len(t, errs, 2)
	assert.Equal(t, "Please select a traveler for your parcel", errs[0].Message)
	assert.Equal(t, "You must agree to the terms and conditions", errs[1].Message)
	assert.Equal(t, validate.KindPrecondition, errs[0].Kind)

	w.Set(FieldTerms, "true")
	in = Input{Values: w.Values(), Selected: &model.CatalogEntry{ID: 3, Name: "Sana"}}
	assert.Empty(t, d.Acknowledge(in))

	q := d.Quote(in.Values)
	require.NotNil(t, q)
	assert.Equal(t, int64(512), q.Breakdown.Total)

	payload, err := d.Build(in, &q.Breakdown)
	require.NoError(t, err)
	want := model.ParcelRequest{
		ParcelType:       "documents",
		Weight:           2.5,
		PickupCity:       "Kandiaro",
		DeliveryCity:     "Karachi",
		PickupDate:       "2024-12-16",
		DeliveryDate:     "2024-12-17",
		PaymentMethod:    "cash",
		SelectedTraveler: 3,
		TotalPrice:       512,
	}
	if diff := cmp.Diff(want, payload); diff != "" {
		t.Errorf("parcel payload mismatch (-want +got):\n%s", diff)
	}
}

func TestParcel_RouteChecks(t *testing.T) {
	tests := []struct {
		name      string
		change    validate.Values
		wantField string
		wantMsg   string
	}{
		{
			name:      "same city",
			change:    validate.Values{"deliveryCity": "kandiaro"},
			wantField: "deliveryCity",
			wantMsg:   "Pickup and delivery cities must be different",
		},
		{
			name:      "past pickup",
			change:    validate.Values{"pickupDate": "2024-12-14"},
			wantField: "pickupDate",
			wantMsg:   "Date cannot be in the past",
		},
		{
			name:      "too heavy",
			change:    validate.Values{"weight": "25"},
			wantField: "weight",
			wantMsg:   "Weight must be between 0.1kg and 20kg",
		},
		{
			name:      "blank city",
			change:    validate.Values{"pickupCity": "  "},
			wantField: "pickupCity",
			wantMsg:   "This field is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWizard(t, Parcel())
			fill(w, validParcel())
			fill(w, tt.change)

			se := w.ValidateAll()
			require.NotNil(t, se)
			fe := se.Result.For(tt.wantField)
			require.NotNil(t, fe)
			assert.Equal(t, tt.wantMsg, fe.Message)
		})
	}
}

func TestDocument_DefaultsAndPresets(t *testing.T) {
	d := Document()
	w := newWizard(t, d)

	assert.Equal(t, "2024-12-16", w.Get("pickupDate"))
	assert.Equal(t, "2024-12-17", w.Get("deliveryDate"))
	assert.Equal(t, "standard", w.Get("securityLevel"))

	w.Set("documentType", "educational")
	d.ApplyPresets(w)
	assert.Equal(t, DocumentDescriptions["educational"], w.Get("documentDescription"))

	w.Set("documentType", "legal")
	d.ApplyPresets(w)
	assert.Equal(t, DocumentDescriptions["educational"], w.Get("documentDescription"), "presets never overwrite")
}

func TestDocument_DeliveryBeforePickup(t *testing.T) {
	w := newWizard(t, Document())
	fill(w, validate.Values{
		"pickupCity":      "karachi",
		"deliveryCity":    "lahore",
		"pickupDate":      "2024-12-18",
		"deliveryDate":    "2024-12-17",
		"pickupAddress":   "Block 5, Clifton",
		"deliveryAddress": "Gulberg III",
		"recipientInfo":   "Ali 03001234567",
	})
	r := w.ValidateStep(1)
	fe := r.For("deliveryDate")
	require.NotNil(t, fe)
	assert.Equal(t, "Delivery date cannot be before pickup date", fe.Message)
}

func TestDocument_QuoteAndBuild(t *testing.T) {
	d := Document()
	values := validate.Values{
		"documentType":        "legal",
		"documentDescription": "Sale deed for the Clifton flat",
		"envelopeSize":        "a4",
		"securityLevel":       "premium",
		"pickupCity":          "karachi",
		"deliveryCity":        "lahore",
		"expressDelivery":     "yes",
		FieldLegal:            "true",
		FieldTerms:            "true",
	}
	in := Input{Values: values}
	assert.Empty(t, d.Acknowledge(in))

	q := d.Quote(values)
	require.NotNil(t, q)
	// 500 + 100 + 200 + 50 = 850, fee 128
	assert.Equal(t, int64(978), q.Breakdown.Total)

	payload, err := d.Build(in, &q.Breakdown)
	require.NoError(t, err)
	req, ok := payload.(model.DocumentRequest)
	require.True(t, ok)
	assert.Equal(t, NotSelected, req.SelectedCarrier)
	assert.True(t, req.ExpressDelivery)
	assert.Equal(t, int64(978), req.TotalPrice)
}

func TestShopping(t *testing.T) {
	d := Shopping()
	w := newWizard(t, d)
	assert.Equal(t, "1", w.Get("quantity"))
	assert.Equal(t, "2024-12-16", w.Get("deliveryDate"))

	fill(w, validate.Values{"itemType": "books", "itemPrice": "99"})
	d.ApplyPresets(w)
	r := w.ValidateStep(0)
	assert.Nil(t, r.For("itemDescription"))
	fe := r.For("itemPrice")
	require.NotNil(t, fe)
	assert.Equal(t, "Minimum item budget is ₹ 100", fe.Message)

	w.Set("quantity", "11")
	fe = w.ValidateField("quantity")
	require.NotNil(t, fe)
	assert.Equal(t, "Quantity must be between 1 and 10", fe.Message)

	w.Set("itemPrice", "NaN")
	fe = w.ValidateField("itemPrice")
	require.NotNil(t, fe)
	assert.Equal(t, validate.KindFormat, fe.Kind)
	q := d.Quote(w.Values())
	require.NotNil(t, q)
	assert.Equal(t, int64(0), mustComponent(t, q.Breakdown, "item_budget"))
	assert.GreaterOrEqual(t, q.Breakdown.Total, int64(0))

	w.Set("itemPrice", "2000")
	w.Set("quantity", "2")
	q = d.Quote(w.Values())
	require.NotNil(t, q)
	assert.Equal(t, int64(4000), mustComponent(t, q.Breakdown, "item_budget"))
	assert.Equal(t, int64(200), mustComponent(t, q.Breakdown, "commission"))

	payload, err := d.Build(Input{Values: w.Values(), Selected: &model.CatalogEntry{ID: 2}}, &q.Breakdown)
	require.NoError(t, err)
	req := payload.(model.ShoppingRequest)
	assert.Equal(t, "2", req.SelectedShopper)
	assert.Equal(t, 2, req.Quantity)
	assert.Equal(t, ItemDescriptions["books"], req.ItemDescription)
}

func mustComponent(t *testing.T, b model.PriceBreakdown, name string) int64 {
	t.Helper()
	v, ok := b.Component(name)
	require.True(t, ok, name)
	return v
}

func TestCommute(t *testing.T) {
	d := Commute()
	w := newWizard(t, d)
	assert.Equal(t, "08:00", w.Get("startTime"))
	assert.Equal(t, "17:00", w.Get("returnTime"))
	assert.Equal(t, "2000", w.Get("pricePerSeat"))

	fill(w, validate.Values{
		"scheduleName": "Office run",
		"pickupPoint":  "Gulshan",
		"dropPoint":    "II Chundrigar Road",
	})
	assert.Nil(t, w.ValidateAll())

	errs := d.Acknowledge(Input{Values: w.Values()})
	require.Len(t, errs, 1)
	assert.Equal(t, "Please select at least one day", errs[0].Message)

	w.Set("operatingDays", "mon, wed,fri")
	assert.Empty(t, d.Acknowledge(Input{Values: w.Values()}))

	payload, err := d.Build(Input{Values: w.Values()}, nil)
	require.NoError(t, err)
	want := model.CommuteSchedule{
		ScheduleName:   "Office run",
		PickupPoint:    "Gulshan",
		DropPoint:      "II Chundrigar Road",
		StartTime:      "08:00",
		ReturnTime:     "17:00",
		OperatingDays:  []string{"mon", "wed", "fri"},
		AvailableSeats: 3,
		PricePerSeat:   2000,
	}
	if diff := cmp.Diff(want, payload); diff != "" {
		t.Errorf("schedule mismatch (-want +got):\n%s", diff)
	}

	w.Set("pricePerSeat", "50")
	fe := w.ValidateField("pricePerSeat")
	require.NotNil(t, fe)
	assert.Equal(t, "Price must be between pkr 100 and pkr 10,000", fe.Message)
}

func TestJourney(t *testing.T) {
	d := Journey()
	w := newWizard(t, d)
	fill(w, validate.Values{
		"name":    "Imran",
		"phone":   "0300 1234567",
		"vehicle": "Suzuki Cultus",
		"from":    "Hyderabad",
		"to":      "Karachi",
		"date":    "2024-12-20",
		"time":    "07:30",
	})

	se := w.ValidateAll()
	require.NotNil(t, se)
	require.Len(t, se.Result.Errors, 1)
	assert.Equal(t, "Please enter a valid Pakistani phone number (+92 XXX XXXXXXX).", se.Result.Errors[0].Message)

	w.Set("phone", "+92 300 1234567")
	assert.Nil(t, w.ValidateAll())

	errs := d.Acknowledge(Input{Values: w.Values()})
	require.Len(t, errs, 2)

	w.Set("services", "carpool,parcel")
	w.Set("passengerPrice", "800")
	w.Set(FieldTerms, "y")
	assert.Empty(t, d.Acknowledge(Input{Values: w.Values()}))

	payload, err := d.Build(Input{Values: w.Values()}, nil)
	require.NoError(t, err)
	post := payload.(model.JourneyPost)
	assert.Equal(t, []string{"carpool", "parcel"}, post.Services)
	assert.Equal(t, int64(800), post.PassengerPrice)
	assert.Equal(t, 3, post.Seats)
	assert.Equal(t, "cash", post.Payment)
}

func TestContact_Messages(t *testing.T) {
	d := Contact()
	w := newWizard(t, d)

	se := w.ValidateAll()
	require.NotNil(t, se)
	assert.Equal(t, map[string]string{
		"fullName":    "Full name is required",
		"contactInfo": "Email or phone number is required",
		"subject":     "Please select a subject",
		"message":     "Message is required",
	}, se.Result.Messages())

	fill(w, validate.Values{
		"fullName":    "Ayesha",
		"contactInfo": "not a contact",
		"subject":     "general",
		"message":     "too short",
	})
	se = w.ValidateAll()
	require.NotNil(t, se)
	assert.Equal(t, map[string]string{
		"contactInfo": "Please enter a valid email or phone number",
		"message":     "Message should be at least 10 characters long",
	}, se.Result.Messages())

	w.Set("contactInfo", "+92 (300) 123-4567")
	w.Set("message", "When does the Sukkur traveler leave?")
	assert.Nil(t, w.ValidateAll())
	assert.True(t, d.NewestFirst)
	assert.False(t, d.Priced())
	assert.Nil(t, d.Quote(w.Values()))
}

func TestSuccessMessage(t *testing.T) {
	assert.Equal(t, "Parcel request submitted! Request ID: SRC-12345", Parcel().SuccessMessage("SRC-12345"))
	assert.Equal(t, "Journey Posted! Journey ID: JRNABC", Journey().SuccessMessage("JRNABC"))
}
