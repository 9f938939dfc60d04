// Package spincsv reads and writes spin histories as CSV with the columns
// Timestamp, DealerID and Number.
package spincsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Veraticus/the-wheel-must-spin/internal/common"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
)

// Header is the first row of every exported file.
var Header = []string{"Timestamp", "DealerID", "Number"}

// localLayout is accepted on import alongside RFC 3339.
const localLayout = "2006-01-02 15:04:05"

// Write encodes outcomes in order, timestamps in RFC 3339.
func Write(w io.Writer, outcomes []model.Outcome) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, o := range outcomes {
		record := []string{
			o.RecordedAt.Format(time.RFC3339),
			o.DealerID,
			fmt.Sprint(o.Number),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write spin %d: %w", o.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read decodes a spin history. The header row is optional. Rows without a
// dealer get fallbackDealer and rows without a timestamp get the zero time,
// which storage replaces with the insert time.
func Read(r io.Reader, fallbackDealer string) ([]model.Outcome, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)
	cr.TrimLeadingSpace = true

	var outcomes []model.Outcome
	for line := 1; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), Header[0]) {
			continue
		}

		outcome, err := parseRecord(record, fallbackDealer)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func parseRecord(record []string, fallbackDealer string) (model.Outcome, error) {
	var outcome model.Outcome

	number, err := model.ParseNumber(record[2])
	if err != nil {
		return outcome, err
	}
	outcome.Number = number

	outcome.DealerID = strings.TrimSpace(record[1])
	if outcome.DealerID == "" {
		outcome.DealerID = fallbackDealer
	}

	if ts := strings.TrimSpace(record[0]); ts != "" {
		outcome.RecordedAt, err = parseTimestamp(ts)
		if err != nil {
			return outcome, err
		}
	}
	return outcome, outcome.Validate()
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.ParseInLocation(localLayout, s, time.Local); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, &common.ValidationError{Field: "timestamp", Value: s, Reason: "expected RFC 3339 or YYYY-MM-DD HH:MM:SS"}
}
