// Package export encodes and decodes the entry collection as CSV for
// download and bulk import. Field names and the empty-clockOut convention
// for open shifts mirror the JSON representation.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"shifttrack.service/internal/core/model"
)

var header = []string{"id", "clockIn", "clockOut", "notes"}

// EncodeEntries writes the entries as CSV. Timestamps are RFC 3339; an open
// entry has an empty clockOut column.
func EncodeEntries(w io.Writer, entries []model.TimeEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, e := range entries {
		clockOut := ""
		if e.ClockOut != nil {
			clockOut = e.ClockOut.Format(time.RFC3339)
		}
		record := []string{e.ID, e.ClockIn.Format(time.RFC3339), clockOut, e.Notes}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// DecodeEntries reads a CSV produced by EncodeEntries (or a compatible
// export from another device) back into entries.
func DecodeEntries(r io.Reader) ([]model.TimeEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return []model.TimeEntry{}, nil
	}

	entries := make([]model.TimeEntry, 0, len(records)-1)
	for i, rec := range records[1:] {
		clockIn, err := time.Parse(time.RFC3339, rec[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad clockIn: %w", i+2, err)
		}
		e := model.TimeEntry{ID: rec[0], ClockIn: clockIn, Notes: rec[3]}
		if rec[2] != "" {
			clockOut, err := time.Parse(time.RFC3339, rec[2])
			if err != nil {
				return nil, fmt.Errorf("row %d: bad clockOut: %w", i+2, err)
			}
			e.ClockOut = &clockOut
		}
		entries = append(entries, e)
	}
	return entries, nil
}
