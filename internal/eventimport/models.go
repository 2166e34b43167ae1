package eventimport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// FeedRecord is one event as published by a third-party feed.
type FeedRecord struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	LayoutID    int64     `json:"layout_id"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	ImageURL    string    `json:"image_url"`
}

type RecordStatus string

const (
	StatusCreated  RecordStatus = "CREATED"
	StatusRejected RecordStatus = "REJECTED"
	StatusFailed   RecordStatus = "FAILED"
)

// RecordResult reports what happened to one record of a batch.
type RecordResult struct {
	Index   int          `json:"index"`
	Name    string       `json:"name"`
	Status  RecordStatus `json:"status"`
	EventID int64        `json:"event_id,omitempty"`
	Reason  string       `json:"reason,omitempty"`
}

// Summary totals a batch.
type Summary struct {
	Created  int            `json:"created"`
	Rejected int            `json:"rejected"`
	Failed   int            `json:"failed"`
	Results  []RecordResult `json:"results"`
}

// DecodeRecords accepts either a JSON array of records or a single record.
func DecodeRecords(data []byte) ([]FeedRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty feed payload")
	}

	if trimmed[0] == '[' {
		var records []FeedRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("decode feed records: %w", err)
		}
		return records, nil
	}

	var record FeedRecord
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return nil, fmt.Errorf("decode feed record: %w", err)
	}
	return []FeedRecord{record}, nil
}
