// Package menu provides the mess schedule table and time-aware menu resolution.
//
// The schedule is loaded once at startup from a CSV file and is immutable
// afterwards. Resolution never returns an error to its caller: every
// unresolvable input degrades to a human-readable "could not find" string,
// because the resolver sits on a direct path from the user-facing dispatcher
// with no recovery step above it.
package menu

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// DessertUnavailable is the sentinel dessert value meaning no dessert is
// served that day. Legacy schedule files use "OFF"; the loader canonicalizes
// that to this value.
const DessertUnavailable = "unavailable"

// Row is one weekday's schedule: three meal slots plus an optional dessert.
type Row struct {
	Day     time.Weekday
	Morning string // Breakfast
	Midday  string // Lunch
	Evening string // Dinner
	Dessert string // Free text, or DessertUnavailable
}

// Table is the immutable schedule, exactly one row per weekday.
type Table struct {
	rows [7]Row
}

// NewTable builds a Table from rows, enforcing exactly one row per weekday.
//
// Returns:
//   - *Table: Schedule indexed by weekday
//   - error: If a weekday is missing or duplicated
func NewTable(rows []Row) (*Table, error) {
	t := &Table{}
	seen := [7]bool{}
	for _, r := range rows {
		if seen[r.Day] {
			return nil, fmt.Errorf("duplicate schedule row for %s", r.Day)
		}
		seen[r.Day] = true
		t.rows[r.Day] = r
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if !seen[d] {
			return nil, fmt.Errorf("missing schedule row for %s", d)
		}
	}
	return t, nil
}

// Row returns the schedule row for a weekday.
func (t *Table) Row(d time.Weekday) Row {
	return t.rows[d]
}

// Week returns all rows ordered Sunday through Saturday, regardless of the
// order rows were supplied in.
func (t *Table) Week() []Row {
	week := make([]Row, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		week = append(week, t.rows[d])
	}
	return week
}

// ParseWeekday canonicalizes a day name to its weekday, case-insensitively.
func ParseWeekday(name string) (time.Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sunday":
		return time.Sunday, true
	case "monday":
		return time.Monday, true
	case "tuesday":
		return time.Tuesday, true
	case "wednesday":
		return time.Wednesday, true
	case "thursday":
		return time.Thursday, true
	case "friday":
		return time.Friday, true
	case "saturday":
		return time.Saturday, true
	}
	return time.Sunday, false
}

// LoadCSV loads the schedule table from a CSV file.
//
// CSV format (matching the legacy schedule export):
//   - Optional header row starting with "day_of_week"
//   - Columns: day_of_week, morning_menu, evening_menu, night_menu, dessert
//   - Example: "Monday","Poha, Tea","Rice, Dal","Roti, Paneer","Gulab Jamun"
//
// A dessert of "OFF" or an empty dessert cell is canonicalized to
// DessertUnavailable.
//
// Error handling:
//   - Missing file, parse errors, short rows, unknown or duplicate weekdays
//     are all fatal: the process must not start serving without a valid table.
func LoadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open menu file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read menu file: %w", err)
	}

	var rows []Row
	for i, record := range records {
		// Skip header row if present
		if i == 0 && len(record) > 0 && strings.EqualFold(record[0], "day_of_week") {
			continue
		}

		if len(record) < 5 {
			return nil, fmt.Errorf("menu row %d has %d columns, want 5", i+1, len(record))
		}

		day, ok := ParseWeekday(record[0])
		if !ok {
			return nil, fmt.Errorf("menu row %d has unknown weekday %q", i+1, record[0])
		}

		rows = append(rows, Row{
			Day:     day,
			Morning: strings.TrimSpace(record[1]),
			Midday:  strings.TrimSpace(record[2]),
			Evening: strings.TrimSpace(record[3]),
			Dessert: normalizeDessert(record[4]),
		})
	}

	table, err := NewTable(rows)
	if err != nil {
		return nil, err
	}

	log.Printf("📚 Loaded mess schedule with %d days from %s", len(rows), path)
	return table, nil
}

// normalizeDessert maps the legacy "OFF" marker and blank cells to the
// DessertUnavailable sentinel.
func normalizeDessert(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "off") || strings.EqualFold(s, DessertUnavailable) {
		return DessertUnavailable
	}
	return s
}
