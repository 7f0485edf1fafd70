package models

import "time"

// UploadRecord is the audit entry written after each processed batch.
type UploadRecord struct {
	ID            string    `json:"id" bson:"_id"`
	Filename      string    `json:"filename" bson:"filename"`
	ReceivedAt    time.Time `json:"receivedAt" bson:"received_at"`
	RowCount      int       `json:"rowCount" bson:"row_count"`
	AcceptedCount int       `json:"acceptedCount" bson:"accepted_count"`
	RejectedCount int       `json:"rejectedCount" bson:"rejected_count"`
}
