package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// referenceEpoch is 2001-01-01T00:00:00Z. Records written by older clients
// store dateCreated as seconds since this instant.
var referenceEpoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// HistoryEntry is an immutable record of a successful capture.
//
// CategoryName and CategoryColorHex are a snapshot taken at creation time;
// they are not linked to the live Category record.
type HistoryEntry struct {
	ID               string
	Title            string
	CreatedAt        time.Time
	CategoryName     string
	CategoryColorHex string
}

// NewHistoryEntry builds an entry with a fresh id.
func NewHistoryEntry(title, categoryName, categoryColorHex string, createdAt time.Time) HistoryEntry {
	return HistoryEntry{
		ID:               uuid.NewString(),
		Title:            title,
		CreatedAt:        createdAt.UTC(),
		CategoryName:     categoryName,
		CategoryColorHex: categoryColorHex,
	}
}

type historyEntryJSON struct {
	ID               *string         `json:"id"`
	Title            *string         `json:"title"`
	DateCreated      json.RawMessage `json:"dateCreated"`
	CategoryName     *string         `json:"categoryName"`
	CategoryColorHex *string         `json:"categoryColorHex"`
}

func (e HistoryEntry) MarshalJSON() ([]byte, error) {
	date, err := json.Marshal(e.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return nil, err
	}
	return json.Marshal(historyEntryJSON{
		ID:               &e.ID,
		Title:            &e.Title,
		DateCreated:      date,
		CategoryName:     &e.CategoryName,
		CategoryColorHex: &e.CategoryColorHex,
	})
}

func (e *HistoryEntry) UnmarshalJSON(b []byte) error {
	var aux historyEntryJSON
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	switch {
	case aux.ID == nil:
		return missingField("id")
	case aux.Title == nil:
		return missingField("title")
	case len(aux.DateCreated) == 0:
		return missingField("dateCreated")
	case aux.CategoryName == nil:
		return missingField("categoryName")
	case aux.CategoryColorHex == nil:
		return missingField("categoryColorHex")
	}

	createdAt, err := parseTimestamp(aux.DateCreated)
	if err != nil {
		return err
	}

	*e = HistoryEntry{
		ID:               *aux.ID,
		Title:            *aux.Title,
		CreatedAt:        createdAt,
		CategoryName:     *aux.CategoryName,
		CategoryColorHex: *aux.CategoryColorHex,
	}
	return nil
}

// parseTimestamp accepts RFC 3339 text or a number of seconds since
// referenceEpoch.
func parseTimestamp(raw json.RawMessage) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, ErrInvalidTimestamp
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
		}
		return t.UTC(), nil
	}

	var secs float64
	if err := json.Unmarshal(raw, &secs); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
	}
	return referenceEpoch.Add(time.Duration(secs * float64(time.Second))), nil
}
