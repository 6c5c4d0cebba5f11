package model

import "time"

// PurchaseRecord is one entry of the append-only purchase log.
type PurchaseRecord struct {
	PackID      string `json:"packId"`
	TimestampMs int64  `json:"ts"`
}

// NewPurchaseRecord records a purchase of packID at t.
func NewPurchaseRecord(packID string, t time.Time) PurchaseRecord {
	return PurchaseRecord{PackID: packID, TimestampMs: t.UnixMilli()}
}

// Time returns the purchase instant in UTC.
func (p PurchaseRecord) Time() time.Time {
	return time.UnixMilli(p.TimestampMs).UTC()
}
