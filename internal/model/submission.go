// Package model defines the records, catalog entries and price breakdowns
// shared by every flow.
package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// SubmissionStatus is the fixed initial status stamped on a record.
type SubmissionStatus string

// Initial statuses per flow family.
const (
	StatusPending  SubmissionStatus = "pending"
	StatusActive   SubmissionStatus = "active"
	StatusPosted   SubmissionStatus = "posted"
	StatusReceived SubmissionStatus = "received"
)

// Submission is one persisted wizard submission. It is never mutated after
// it has been appended to its list.
type Submission struct {
	Timestamp  time.Time        `json:"timestamp"`
	Price      *PriceBreakdown  `json:"price,omitempty"`
	ID         string           `json:"id"`
	TrackingID string           `json:"trackingId"`
	Flow       string           `json:"flow"`
	Status     SubmissionStatus `json:"status"`
	Fields     json.RawMessage  `json:"fields"`
}

// NewSubmission encodes the typed flow request into a record.
func NewSubmission(flow, trackingID string, status SubmissionStatus, ts time.Time, fields any, price *PriceBreakdown) (*Submission, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s fields: %w", flow, err)
	}
	return &Submission{
		Flow:       flow,
		TrackingID: trackingID,
		Status:     status,
		Timestamp:  ts.UTC(),
		Fields:     raw,
		Price:      price,
	}, nil
}

// DecodeFields unmarshals the flow-specific payload into v.
func (s *Submission) DecodeFields(v any) error {
	if len(s.Fields) == 0 {
		return fmt.Errorf("submission %s has no fields", s.TrackingID)
	}
	if err := json.Unmarshal(s.Fields, v); err != nil {
		return fmt.Errorf("failed to decode %s fields: %w", s.Flow, err)
	}
	return nil
}

// ISOTimestamp renders the timestamp the way it is stored.
func (s *Submission) ISOTimestamp() string {
	return s.Timestamp.UTC().Format(time.RFC3339)
}
