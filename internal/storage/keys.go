package storage

import "slices"

// Record list keys.
const (
	KeyParcelRequests   = "parcelRequests"
	KeyDocumentRequests = "documentRequests"
	KeyShoppingRequests = "shoppingRequests"
	KeyCommuteSchedules = "commuteSchedules"
	KeyContactMessages  = "safarShareMessages"
	KeyPostedJourneys   = "postedJourneys"
)

// Join log keys.
const (
	KeyJoinedCommutes = "joinedCommutes"
)

// Last tracking id keys.
const (
	KeyLastParcelID   = "lastParcelRequestId"
	KeyLastDocumentID = "lastDocumentTrackingId"
	KeyLastShoppingID = "lastShoppingRequestId"
)

var (
	recordKeys = []string{
		KeyParcelRequests, KeyDocumentRequests, KeyShoppingRequests,
		KeyCommuteSchedules, KeyContactMessages, KeyPostedJourneys,
	}
	joinKeys = []string{KeyJoinedCommutes}
)

// RecordKeys lists every record list key.
func RecordKeys() []string { return slices.Clone(recordKeys) }

// IsRecordKey reports whether key names a record list.
func IsRecordKey(key string) bool { return slices.Contains(recordKeys, key) }

// IsJoinKey reports whether key names a join log.
func IsJoinKey(key string) bool { return slices.Contains(joinKeys, key) }
