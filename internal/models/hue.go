package models

import (
	"errors"
	"time"

	"hueareyou/internal/palette"
)

// ErrInvalidRange is returned for a record range that is negative or reversed
var ErrInvalidRange = errors.New("invalid record range")

// Assignment is one word of a run and the color chosen for it, if any
type Assignment struct {
	Word      string
	Selection palette.Selection
}

// ChoiceEntry is a word with its chosen color
type ChoiceEntry struct {
	Word  string
	Color palette.Color
}

// Choices is the ordered word→color mapping produced by a completed run.
// Words whose color was never chosen are not present.
type Choices []ChoiceEntry

// Map converts the choices to the wire representation
func (c Choices) Map() map[string]string {
	m := make(map[string]string, len(c))
	for _, e := range c {
		m[e.Word] = string(e.Color)
	}
	return m
}

// Len returns the number of colored words
func (c Choices) Len() int {
	return len(c)
}

// Record is a saved classification: a display name and its word→color mapping
type Record struct {
	Name   string
	Choice map[string]string
}

// HueRecord is a record as stored by the server
type HueRecord struct {
	ID        int64
	UserName  string
	Choices   map[string]string
	CreatedAt time.Time
}

// RecordRange is the closed interval [Begin, End] of record positions
type RecordRange struct {
	Begin int
	End   int
}

// NewRecordRange rejects a negative begin or an end before begin
func NewRecordRange(begin, end int) (RecordRange, error) {
	if begin < 0 || end < begin {
		return RecordRange{}, ErrInvalidRange
	}
	return RecordRange{Begin: begin, End: end}, nil
}

// Count returns the number of positions covered by the range
func (r RecordRange) Count() int {
	return r.End - r.Begin + 1
}
