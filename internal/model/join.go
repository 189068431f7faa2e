package model

import "time"

// JoinEntry records a user joining a catalog entry. Join entries form an
// append-only action log; the catalog itself is never updated.
type JoinEntry struct {
	JoinedAt  time.Time   `json:"joinedAt"`
	ID        string      `json:"id"`
	EntryName string      `json:"commuteName"`
	Kind      CatalogKind `json:"kind"`
	EntryID   int         `json:"commuteId"`
	Price     int64       `json:"price"`
}
