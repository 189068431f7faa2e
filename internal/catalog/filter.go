package catalog

import (
	"strings"

	"github.com/safarshare/safar/internal/model"
)

// Filter narrows a catalog. Zero fields match everything; "all" is
// treated as blank for Type.
type Filter struct {
	Tag           string
	Type          string
	Route         string
	From          string
	City          string
	MinRating     float64
	MaxPrice      int64
	MinExperience int
	VerifiedOnly  bool
}

// Match reports whether e passes every set criterion. Text criteria are
// case-insensitive substring matches except Type and City, which must be
// equal.
func (f Filter) Match(e model.CatalogEntry) bool {
	if f.Tag != "" && !hasTag(e.Tags, f.Tag) {
		return false
	}
	if t := strings.ToLower(strings.TrimSpace(f.Type)); t != "" && t != "all" && !strings.EqualFold(e.Type, t) {
		return false
	}
	if r := strings.ToLower(strings.TrimSpace(f.Route)); r != "" && !strings.Contains(e.Route(), r) {
		return false
	}
	if from := strings.ToLower(strings.TrimSpace(f.From)); from != "" && !strings.Contains(strings.ToLower(e.From), from) {
		return false
	}
	if c := strings.TrimSpace(f.City); c != "" && !strings.EqualFold(e.City, c) {
		return false
	}
	if f.MinRating > 0 && e.Rating < f.MinRating {
		return false
	}
	if f.MaxPrice > 0 && e.Price > f.MaxPrice {
		return false
	}
	if f.MinExperience > 0 && e.Experience < f.MinExperience {
		return false
	}
	if f.VerifiedOnly && !e.Verified {
		return false
	}
	return true
}

func hasTag(tags []string, want string) bool {
	want = strings.TrimSpace(want)
	for _, t := range tags {
		if strings.EqualFold(t, want) {
			return true
		}
	}
	return false
}

// Apply returns the entries matching f, preserving order.
func Apply(entries []model.CatalogEntry, f Filter) []model.CatalogEntry {
	var out []model.CatalogEntry
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}
