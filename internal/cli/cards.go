package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/safarshare/safar/internal/model"
	"github.com/safarshare/safar/internal/pricing"
)

// EmptyListMessage is shown for a list without records.
const EmptyListMessage = "No messages yet. Submitted messages will appear here."

// CardState controls how a catalog card is drawn.
type CardState int

// Card states.
const (
	CardNormal CardState = iota
	CardSelected
	CardDisabled
)

func stars(rating float64) string {
	full := int(rating + 0.5)
	full = max(0, min(full, 5))
	return strings.Repeat(StarIcon, full) + strings.Repeat("☆", 5-full)
}

func kindIcon(e model.CatalogEntry) string {
	switch e.Kind {
	case model.KindTraveler:
		return ParcelIcon
	case model.KindCarrier:
		return DocumentIcon
	case model.KindShopper:
		return ShoppingIcon
	default:
		if e.Type == "rider" {
			return RiderIcon
		}
		return CarIcon
	}
}

// RenderCard draws one catalog entry.
func RenderCard(e model.CatalogEntry, state CardState) string {
	name := BoldStyle.Render(e.Name)
	if e.Verified {
		name += " " + SuccessStyle.Render(VerifiedIcon)
	}
	if e.Mine {
		name += " " + PriceStyle.Render("YOU")
	}
	header := fmt.Sprintf("%s [%d] %s  %s %.1f", kindIcon(e), e.ID, name, WarningStyle.Render(stars(e.Rating)), e.Rating)

	lines := []string{header}
	switch {
	case e.From != "" || e.To != "":
		lines = append(lines, fmt.Sprintf("%s → %s", e.From, e.To))
	case e.City != "":
		lines = append(lines, e.City)
	}

	var meta []string
	if e.Vehicle != "" {
		meta = append(meta, e.Vehicle)
	}
	if e.Type != "" {
		meta = append(meta, e.Type)
	}
	if e.Departure != "" {
		when := e.Departure
		if e.Arrival != "" {
			when += " – " + e.Arrival
		}
		meta = append(meta, when)
	}
	if len(e.Days) > 0 {
		meta = append(meta, strings.Join(e.Days, ", "))
	}
	if len(meta) > 0 {
		lines = append(lines, SubtleStyle.Render(strings.Join(meta, " • ")))
	}
	if len(e.Tags) > 0 {
		lines = append(lines, SubtleStyle.Render("#"+strings.Join(e.Tags, " #")))
	}
	if e.Bio != "" {
		lines = append(lines, e.Bio)
	}

	capacity := fmt.Sprintf("%d %s left", e.Capacity, e.CapacityUnit())
	if e.Capacity == 0 {
		capacity = ErrorStyle.Render("Full")
	}
	footer := fmt.Sprintf("%s  •  %s  •  %d trips",
		PriceStyle.Render(model.FormatAmount(pricing.CurrencyPKR, e.Price)), capacity, e.Experience)
	if e.ResponseTime != "" {
		footer += "  •  replies " + e.ResponseTime
	}
	lines = append(lines, footer)

	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	switch state {
	case CardSelected:
		return SelectedCardStyle.Render(body)
	case CardDisabled:
		return DisabledCardStyle.Render(body)
	default:
		return CardStyle.Render(body)
	}
}

// RenderCards draws every entry, marking the selected one and those
// without capacity.
func RenderCards(entries []model.CatalogEntry, selectedID int) string {
	if len(entries) == 0 {
		return SubtleStyle.Render("No matches found. Try different filters.")
	}
	cards := make([]string, 0, len(entries))
	for _, e := range entries {
		state := CardNormal
		switch {
		case e.ID == selectedID:
			state = CardSelected
		case e.Kind == model.KindCommute && e.Capacity == 0:
			state = CardDisabled
		}
		cards = append(cards, RenderCard(e, state))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// RenderBreakdown draws a price breakdown with the informational savings
// line.
func RenderBreakdown(q *pricing.Quote) string {
	if q == nil {
		return ""
	}
	b := q.Breakdown
	width := 0
	for _, c := range b.Components {
		width = max(width, len(c.Label))
	}

	var sb strings.Builder
	for _, c := range b.Components {
		fmt.Fprintf(&sb, "%-*s  %s\n", width, c.Label, model.FormatAmount(b.Currency, c.Amount))
	}
	fmt.Fprintf(&sb, "%-*s  %s", width, "Total", PriceStyle.Render(model.FormatAmount(b.Currency, b.Total)))
	if q.Savings > 0 {
		fmt.Fprintf(&sb, "\n%s", SuccessStyle.Render("You save "+model.FormatAmount(b.Currency, q.Savings)))
	}
	return RenderBox("Price breakdown", sb.String())
}

// RenderSubmission draws one stored record as a compact line.
func RenderSubmission(sub model.Submission) string {
	line := fmt.Sprintf("%s  %s  %s",
		BoldStyle.Render(sub.TrackingID),
		SubtleStyle.Render(sub.Timestamp.Local().Format("2006-01-02 15:04")),
		InfoStyle.Render(string(sub.Status)))
	if sub.Price != nil {
		line += "  " + PriceStyle.Render(model.FormatAmount(sub.Price.Currency, sub.Price.Total))
	}
	return line
}

// RenderJoins draws the join log.
func RenderJoins(joins []model.JoinEntry) string {
	if len(joins) == 0 {
		return SubtleStyle.Render("You have not joined any commute yet.")
	}
	var sb strings.Builder
	for i, j := range joins {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s [%d] %s  %s  %s", CarIcon, j.EntryID, BoldStyle.Render(j.EntryName),
			PriceStyle.Render(model.FormatAmount(pricing.CurrencyPKR, j.Price)),
			SubtleStyle.Render(j.JoinedAt.Local().Format("2006-01-02 15:04")))
	}
	return sb.String()
}
