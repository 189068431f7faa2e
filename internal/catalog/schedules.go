package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/safarshare/safar/internal/model"
)

// ScheduleIDBase is added to a stored schedule's index to form its id.
const ScheduleIDBase = 100

var dayLabels = map[string]string{
	"mon": "Mon", "tue": "Tue", "wed": "Wed", "thu": "Thu",
	"fri": "Fri", "sat": "Sat", "sun": "Sun",
}

// ScheduleEntries turns the user's stored schedules (oldest first) into
// commute entries named "You", most recent first.
func ScheduleEntries(schedules []model.CommuteSchedule) []model.CatalogEntry {
	out := make([]model.CatalogEntry, 0, len(schedules))
	for i := len(schedules) - 1; i >= 0; i-- {
		s := schedules[i]
		days := make([]string, 0, len(s.OperatingDays))
		for _, d := range s.OperatingDays {
			days = append(days, DayLabel(d))
		}
		notes := s.ScheduleNotes
		if notes == "" {
			notes = "My daily commute schedule"
		}
		out = append(out, model.CatalogEntry{
			ID:        ScheduleIDBase + i,
			Name:      "You",
			Avatar:    "ME",
			Kind:      model.KindCommute,
			Type:      "driver",
			Gender:    "mixed",
			Rating:    5.0,
			Vehicle:   "Your Vehicle",
			From:      s.PickupPoint,
			To:        s.DropPoint,
			Departure: FormatClock(s.StartTime),
			Arrival:   FormatClock(s.ReturnTime),
			Days:      days,
			Capacity:  s.AvailableSeats,
			Price:     s.PricePerSeat,
			Joined:    s.JoinedMembers,
			Bio:       notes,
			Mine:      true,
		})
	}
	return out
}

// DayLabel renders a stored day ("mon", "monday") as "Mon".
func DayLabel(day string) string {
	d := strings.ToLower(strings.TrimSpace(day))
	if len(d) >= 3 {
		if label, ok := dayLabels[d[:3]]; ok {
			return label
		}
	}
	return day
}

// FormatClock renders "HH:MM" as a 12-hour time. Values already carrying
// AM/PM are returned as is; blank values read "Not specified".
func FormatClock(hhmm string) string {
	s := strings.TrimSpace(hhmm)
	if s == "" {
		return "Not specified"
	}
	if strings.Contains(s, "AM") || strings.Contains(s, "PM") {
		return s
	}
	hours, minutes, ok := strings.Cut(s, ":")
	if !ok {
		return s
	}
	h, err := strconv.Atoi(hours)
	if err != nil {
		return s
	}
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%s %s", h12, minutes, ampm)
}
