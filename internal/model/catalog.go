package model

import (
	"fmt"
	"strings"
)

// CatalogKind names a catalog of candidates.
type CatalogKind string

// Catalog kinds.
const (
	KindTraveler CatalogKind = "travelers"
	KindCarrier  CatalogKind = "carriers"
	KindShopper  CatalogKind = "shoppers"
	KindCommute  CatalogKind = "commutes"
)

// ParseCatalogKind accepts singular or plural kind names.
func ParseCatalogKind(s string) (CatalogKind, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s") {
	case "traveler":
		return KindTraveler, nil
	case "carrier":
		return KindCarrier, nil
	case "shopper":
		return KindShopper, nil
	case "commute":
		return KindCommute, nil
	default:
		return "", fmt.Errorf("unknown catalog kind %q", s)
	}
}

// CatalogEntry is a displayed candidate: a traveler carrying parcels, a
// document carrier, a personal shopper or a commute offer.
type CatalogEntry struct {
	Name         string      `yaml:"name" json:"name"`
	Avatar       string      `yaml:"avatar" json:"avatar"`
	Vehicle      string      `yaml:"vehicle,omitempty" json:"vehicle,omitempty"`
	From         string      `yaml:"from,omitempty" json:"from,omitempty"`
	To           string      `yaml:"to,omitempty" json:"to,omitempty"`
	City         string      `yaml:"city,omitempty" json:"city,omitempty"`
	Type         string      `yaml:"type,omitempty" json:"type,omitempty"`
	Gender       string      `yaml:"gender,omitempty" json:"gender,omitempty"`
	Departure    string      `yaml:"departure,omitempty" json:"departure,omitempty"`
	Arrival      string      `yaml:"arrival,omitempty" json:"arrival,omitempty"`
	ResponseTime string      `yaml:"response_time,omitempty" json:"responseTime,omitempty"`
	SuccessRate  string      `yaml:"success_rate,omitempty" json:"successRate,omitempty"`
	Bio          string      `yaml:"bio,omitempty" json:"bio,omitempty"`
	Kind         CatalogKind `yaml:"kind" json:"kind"`
	Tags         []string    `yaml:"tags,omitempty" json:"tags,omitempty"`
	Days         []string    `yaml:"days,omitempty" json:"days,omitempty"`
	ID           int         `yaml:"id" json:"id"`
	Experience   int         `yaml:"experience" json:"experience"`
	Price        int64       `yaml:"price" json:"price"`
	Capacity     int         `yaml:"capacity" json:"capacity"`
	Joined       int         `yaml:"joined,omitempty" json:"joined,omitempty"`
	Rating       float64     `yaml:"rating" json:"rating"`
	Verified     bool        `yaml:"verified" json:"verified"`
	Mine         bool        `yaml:"mine,omitempty" json:"mine,omitempty"`
}

// Route returns the lower-cased "from-to" key used by route filters.
func (e CatalogEntry) Route() string {
	if e.From == "" && e.To == "" {
		return strings.ToLower(e.City)
	}
	return strings.ToLower(e.From + "-" + e.To)
}

// CapacityUnit is the unit shown next to capacity for this kind.
func (e CatalogEntry) CapacityUnit() string {
	switch e.Kind {
	case KindTraveler:
		return "kg"
	case KindCommute:
		return "seats"
	default:
		return "slots"
	}
}

// Validate checks the fields every entry must carry.
func (e CatalogEntry) Validate() error {
	if e.ID <= 0 {
		return fmt.Errorf("catalog entry %q: id must be positive", e.Name)
	}
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("catalog entry %d: name is required", e.ID)
	}
	if e.Rating < 0 || e.Rating > 5 {
		return fmt.Errorf("catalog entry %d: rating must be between 0 and 5", e.ID)
	}
	if e.Price < 0 {
		return fmt.Errorf("catalog entry %d: price cannot be negative", e.ID)
	}
	if e.Capacity < 0 {
		return fmt.Errorf("catalog entry %d: capacity cannot be negative", e.ID)
	}
	return nil
}
