package menu

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testRows() []Row {
	// Deliberately out of order to exercise week ordering.
	days := []time.Weekday{time.Wednesday, time.Sunday, time.Saturday, time.Monday, time.Friday, time.Tuesday, time.Thursday}
	rows := make([]Row, 0, 7)
	for _, d := range days {
		dessert := DessertUnavailable
		if d == time.Monday {
			dessert = "Gulab Jamun"
		}
		rows = append(rows, Row{
			Day:     d,
			Morning: "Poha",
			Midday:  "Rice, Dal",
			Evening: "Roti, Paneer",
			Dessert: dessert,
		})
	}
	return rows
}

func mustTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(testRows())
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestNewTableRequiresAllWeekdays(t *testing.T) {
	_, err := NewTable(testRows()[:6])
	if err == nil {
		t.Error("expected error for missing weekday")
	}

	dup := append(testRows(), Row{Day: time.Monday})
	_, err = NewTable(dup)
	if err == nil {
		t.Error("expected error for duplicate weekday")
	}
}

func TestWeekOrderedSundayFirst(t *testing.T) {
	week := mustTable(t).Week()
	if len(week) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(week))
	}
	for i, row := range week {
		if row.Day != time.Weekday(i) {
			t.Errorf("position %d has %s, want %s", i, row.Day, time.Weekday(i))
		}
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in   string
		want time.Weekday
		ok   bool
	}{
		{"monday", time.Monday, true},
		{"Monday", time.Monday, true},
		{"  SATURDAY  ", time.Saturday, true},
		{"funday", time.Sunday, false},
		{"", time.Sunday, false},
	}
	for _, tt := range tests {
		got, ok := ParseWeekday(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseWeekday(%q) = %v,%v want %v,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLoadCSV(t *testing.T) {
	csv := `day_of_week,morning_menu,evening_menu,night_menu,dessert
Sunday,Poha,Rice,Roti,Gulab Jamun
Monday,Idli,Rajma,Paneer,OFF
Tuesday,Upma,Kadhi,Biryani,Kheer
Wednesday,Bread,Dal,Chhole,
Thursday,Chilla,Sambar,Pulao,Ice Cream
Friday,Paratha,Chana,Khichdi,OFF
Saturday,Bhature,Mix Veg,Egg Curry,Halwa
`
	path := filepath.Join(t.TempDir(), "menu.csv")
	if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadCSV(path)
	if err != nil {
		t.Fatal(err)
	}

	if got := table.Row(time.Sunday).Dessert; got != "Gulab Jamun" {
		t.Errorf("Sunday dessert = %q", got)
	}
	// Legacy OFF marker and blank cells canonicalize to the sentinel.
	if got := table.Row(time.Monday).Dessert; got != DessertUnavailable {
		t.Errorf("Monday dessert = %q, want %q", got, DessertUnavailable)
	}
	if got := table.Row(time.Wednesday).Dessert; got != DessertUnavailable {
		t.Errorf("Wednesday dessert = %q, want %q", got, DessertUnavailable)
	}
	if got := table.Row(time.Tuesday).Evening; got != "Biryani" {
		t.Errorf("Tuesday dinner = %q", got)
	}
}

func TestLoadCSVErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadCSV(filepath.Join(dir, "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}

	short := filepath.Join(dir, "short.csv")
	os.WriteFile(short, []byte("Sunday,Poha,Rice\n"), 0644)
	if _, err := LoadCSV(short); err == nil {
		t.Error("expected error for short row")
	}

	badDay := filepath.Join(dir, "badday.csv")
	os.WriteFile(badDay, []byte("Funday,a,b,c,d\n"), 0644)
	if _, err := LoadCSV(badDay); err == nil {
		t.Error("expected error for unknown weekday")
	}

	incomplete := filepath.Join(dir, "incomplete.csv")
	os.WriteFile(incomplete, []byte("Sunday,a,b,c,d\nMonday,a,b,c,d\n"), 0644)
	if _, err := LoadCSV(incomplete); err == nil {
		t.Error("expected error for missing weekdays")
	}
}
