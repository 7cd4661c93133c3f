// Package csvdata validates fixture and zone CSV uploads before they leave
// the client. A file rejected here never reaches the HTTP layer.
package csvdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// FixtureHeaders are the columns a fixture CSV must carry, in any order.
var FixtureHeaders = []string{"name", "type", "controltype", "wattage", "voltage"}

// ZoneHeaders are the columns a zone CSV must carry, in any order.
var ZoneHeaders = []string{"name", "fixture", "quantity", "circuit", "area"}

// ValidateFixtureCSV checks the fixture CSV header row and that every data
// row has the header's column count.
func ValidateFixtureCSV(r io.Reader) error {
	return validate(r, "fixture", FixtureHeaders)
}

// ValidateZoneCSV checks the zone CSV header row and that every data row has
// the header's column count.
func ValidateZoneCSV(r io.Reader) error {
	return validate(r, "zone", ZoneHeaders)
}

func validate(r io.Reader, kind string, required []string) error {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return fmt.Errorf("%s CSV is empty", kind)
	}
	if err != nil {
		return fmt.Errorf("read %s CSV header: %w", kind, err)
	}

	seen := make(map[string]struct{}, len(header))
	for _, col := range header {
		seen[normalize(col)] = struct{}{}
	}
	for _, want := range required {
		if _, ok := seen[want]; !ok {
			return fmt.Errorf("%s CSV is missing required column %q", kind, want)
		}
	}

	// csv.Reader enforces the header's column count on every following row.
	row := 1
	for {
		_, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read %s CSV row %d: %w", kind, row+1, err)
		}
		row++
	}

	if row == 1 {
		return fmt.Errorf("%s CSV has no data rows", kind)
	}
	return nil
}

func normalize(col string) string {
	col = strings.TrimSpace(strings.ToLower(col))
	return strings.ReplaceAll(col, "_", "")
}
