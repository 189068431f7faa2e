package flow

import (
	"fmt"
	"math"
	"time"

	"github.com/safarshare/safar/internal/model"
	"github.com/safarshare/safar/internal/storage"
	"github.com/safarshare/safar/internal/trackid"
	"github.com/safarshare/safar/internal/validate"
	"github.com/safarshare/safar/internal/wizard"
)

// Weekdays are the accepted operating days.
var Weekdays = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// Commute is the daily commute schedule flow. Saved schedules show up at
// the top of the commute board.
func Commute() *Definition {
	return &Definition{
		Name:          NameCommute,
		Title:         "Commute schedule",
		Key:           storage.KeyCommuteSchedules,
		Prefix:        "CM-",
		Scheme:        trackid.EpochTail8,
		Status:        model.StatusActive,
		RejectMessage: "Please fill all required fields",
		steps:         commuteSteps,
		defaults: func(_ func() time.Time) validate.Values {
			return validate.Values{
				"startTime":      "08:00",
				"returnTime":     "17:00",
				"availableSeats": "3",
				"pricePerSeat":   "2000",
			}
		},
		Acks: []Acknowledgement{
			{
				Field:     "operatingDays",
				Label:     "Operating days",
				Message:   "Please select at least one day",
				Satisfied: func(in Input) bool { return len(in.Values.List("operatingDays")) > 0 },
			},
		},
		build: buildCommute,
		success: func(id string) string {
			return fmt.Sprintf("Schedule created! Schedule ID: %s", id)
		},
	}
}

func commuteSteps(_ func() time.Time) []wizard.Step {
	return []wizard.Step{
		{
			Name:  "schedule",
			Title: "Daily commute",
			Fields: []validate.Field{
				text("scheduleName", "Schedule name", validate.MinLength(3, "Please enter a valid schedule name")),
				text("pickupPoint", "Pickup point", validate.MinLength(3, "Please enter a valid start location")),
				text("dropPoint", "Drop point", validate.MinLength(3, "Please enter a valid destination")),
				text("startTime", "Start time (HH:MM)", validate.Clock("Please enter a time as HH:MM")),
				optional("returnTime", "Return time (HH:MM)", validate.Clock("Please enter a time as HH:MM")),
				{
					Name:    "operatingDays",
					Label:   "Operating days",
					Help:    "comma separated, e.g. mon,tue,wed",
					Input:   validate.InputList,
					Options: Weekdays,
					Checks:  []validate.Check{validate.EachOneOf(Weekdays...)},
				},
				text("availableSeats", "Available seats", validate.IntRange(1, 8, "Seats must be between 1 and 8")),
				text("pricePerSeat", "Monthly price per seat",
					validate.FloatRange(100, 10000, "Price must be between pkr 100 and pkr 10,000")),
				optional("scheduleNotes", "Notes"),
			},
		},
	}
}

func buildCommute(in Input, _ *model.PriceBreakdown) (any, error) {
	v := in.Values
	return model.CommuteSchedule{
		ScheduleName:   v.Get("scheduleName"),
		PickupPoint:    v.Get("pickupPoint"),
		DropPoint:      v.Get("dropPoint"),
		StartTime:      v.Get("startTime"),
		ReturnTime:     v.Get("returnTime"),
		OperatingDays:  v.List("operatingDays"),
		AvailableSeats: integer(v, "availableSeats"),
		PricePerSeat:   int64(math.Round(float(v, "pricePerSeat"))),
		ScheduleNotes:  v.Get("scheduleNotes"),
	}, nil
}
