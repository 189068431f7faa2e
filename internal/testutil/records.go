package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/safarshare/safar/internal/model"
	"github.com/safarshare/safar/internal/storage"
)

// FixedTime is the default timestamp of seeded records.
var FixedTime = time.Date(2024, 12, 15, 9, 0, 0, 0, time.UTC)

type seed struct {
	key string
	sub *model.Submission
}

// RecordBuilder seeds record lists with a fluent API.
//
//	db := testutil.SetupTestDBWithOptions(t, testutil.TestDBOptions{
//		Records: testutil.NewRecordBuilder(t).WithContactMessages(3),
//	})
type RecordBuilder struct {
	t     *testing.T
	seeds []seed
}

// NewRecordBuilder creates an empty builder.
func NewRecordBuilder(t *testing.T) *RecordBuilder {
	t.Helper()
	return &RecordBuilder{t: t}
}

func (b *RecordBuilder) add(key, flow, trackingID string, status model.SubmissionStatus, fields any, price *model.PriceBreakdown) *RecordBuilder {
	b.t.Helper()
	ts := FixedTime.Add(time.Duration(len(b.seeds)) * time.Minute)
	sub, err := model.NewSubmission(flow, trackingID, status, ts, fields, price)
	if err != nil {
		b.t.Fatalf("failed to build %s record: %v", flow, err)
	}
	b.seeds = append(b.seeds, seed{key: key, sub: sub})
	return b
}

// WithParcel adds a parcel request.
func (b *RecordBuilder) WithParcel(trackingID string) *RecordBuilder {
	b.t.Helper()
	price := model.NewPriceBreakdown("pkr",
		model.Charge{Name: "base", Label: "Base price", Amount: 400},
		model.Charge{Name: "weight", Label: "Weight charge", Amount: 45},
		model.Charge{Name: "handling", Label: "Special handling", Amount: 0},
		model.Charge{Name: "platform_fee", Label: "Platform fee", Amount: 67},
	)
	return b.add(storage.KeyParcelRequests, "parcel", trackingID, model.StatusPending, model.ParcelRequest{
		ParcelType:       "documents",
		PickupCity:       "kandiaro",
		DeliveryCity:     "karachi",
		PickupDate:       "2024-12-16",
		DeliveryDate:     "2024-12-17",
		PaymentMethod:    "cash",
		Weight:           2.5,
		SelectedTraveler: 1,
		TotalPrice:       price.Total,
	}, &price)
}

// WithContactMessages adds n contact messages.
func (b *RecordBuilder) WithContactMessages(n int) *RecordBuilder {
	b.t.Helper()
	for i := range n {
		b.add(storage.KeyContactMessages, "contact", fmt.Sprintf("MSG-%d", 1734253200000+i), model.StatusReceived, model.ContactMessage{
			FullName:    fmt.Sprintf("Customer %d", i+1),
			ContactInfo: fmt.Sprintf("customer%d@example.com", i+1),
			Subject:     "general",
			Message:     "Is there a traveler going to Karachi this week?",
		}, nil)
	}
	return b
}

// WithCommuteSchedule adds a commute schedule.
func (b *RecordBuilder) WithCommuteSchedule(trackingID, name string) *RecordBuilder {
	b.t.Helper()
	return b.add(storage.KeyCommuteSchedules, "commute", trackingID, model.StatusActive, model.CommuteSchedule{
		ScheduleName:   name,
		PickupPoint:    "Gulshan-e-Iqbal",
		DropPoint:      "Saddar",
		StartTime:      "08:00",
		ReturnTime:     "17:00",
		OperatingDays:  []string{"monday", "wednesday", "friday"},
		PricePerSeat:   2000,
		AvailableSeats: 3,
	}, nil)
}

// Build appends every seeded record in order.
func (b *RecordBuilder) Build(ctx context.Context, store *storage.SQLiteStorage) error {
	for _, s := range b.seeds {
		if err := store.Append(ctx, s.key, s.sub); err != nil {
			return fmt.Errorf("failed to seed %s: %w", s.sub.TrackingID, err)
		}
	}
	return nil
}
