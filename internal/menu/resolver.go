package menu

import (
	"fmt"
	"strings"
	"time"
)

// Slot identifies which of the three daily meal windows is current.
type Slot int

const (
	Morning Slot = iota // 5 AM – 10 AM
	Midday              // 11 AM – 4 PM
	Evening             // 5 PM – 11 PM
)

// Label returns the user-facing meal name for a slot.
func (s Slot) Label() string {
	switch s {
	case Midday:
		return "🌞 Lunch"
	case Evening:
		return "🌙 Dinner"
	default:
		return "🌅 Breakfast"
	}
}

// Resolver answers "what is being served" queries from the schedule table
// and a wall-clock time, in a single fixed time zone. It has no mutable
// state of its own.
type Resolver struct {
	table *Table
	loc   *time.Location
}

// NewResolver creates a resolver over an immutable table. A nil location
// falls back to the local zone.
func NewResolver(table *Table, loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.Local
	}
	return &Resolver{table: table, loc: loc}
}

// CurrentMealWindow maps an instant to its meal slot.
//
// Hours 0–4 fall outside all three configured windows; the resolver
// defaults to Morning rather than failing. There is always an answer.
func (r *Resolver) CurrentMealWindow(now time.Time) Slot {
	hour := now.In(r.loc).Hour()
	switch {
	case hour >= 5 && hour <= 10:
		return Morning
	case hour >= 11 && hour <= 16:
		return Midday
	case hour >= 17:
		return Evening
	default:
		return Morning
	}
}

// CurrentMenu renders the meal being served right now.
//
// The dessert line appears only when the day has a dessert and the window
// is Midday or Evening; dessert is never reported with breakfast.
func (r *Resolver) CurrentMenu(now time.Time) string {
	local := now.In(r.loc)
	slot := r.CurrentMealWindow(now)
	row := r.table.Row(local.Weekday())

	var meal string
	switch slot {
	case Midday:
		meal = row.Midday
	case Evening:
		meal = row.Evening
	default:
		meal = row.Morning
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🕐 Current Time: %s\n", local.Format("03:04 PM"))
	fmt.Fprintf(&b, "📅 %s's Menu\n\n", local.Weekday())
	fmt.Fprintf(&b, "%s:\n%s", slot.Label(), meal)

	if slot != Morning && row.Dessert != DessertUnavailable {
		fmt.Fprintf(&b, "\n\n🍨 Dessert: %s", row.Dessert)
	}

	return b.String()
}

// MenuForDay looks up the schedule row for a day name, case-insensitively.
func (r *Resolver) MenuForDay(name string) (Row, bool) {
	day, ok := ParseWeekday(name)
	if !ok {
		return Row{}, false
	}
	return r.table.Row(day), true
}

// FullWeekMenu returns the 7 rows ordered Sunday through Saturday.
func (r *Resolver) FullWeekMenu() []Row {
	return r.table.Week()
}

// Resolve is the single entry point used by callers.
//
// dayArg semantics:
//   - "" or "today": the menu for the current meal window
//   - "week": the formatted full week
//   - anything else: treated as a weekday name; unknown input yields a
//     "could not find" message naming the input, never an error
func (r *Resolver) Resolve(dayArg string, now time.Time) string {
	arg := strings.ToLower(strings.TrimSpace(dayArg))
	switch arg {
	case "", "today":
		return r.CurrentMenu(now)
	case "week":
		return r.FormatWeek()
	}

	row, ok := r.MenuForDay(arg)
	if !ok {
		return fmt.Sprintf("Sorry, I couldn't find a menu for %q. Try a weekday name, \"today\", or \"week\".", dayArg)
	}
	return FormatDay(row)
}

// FormatDay renders one day's schedule as a block with Breakfast, Lunch and
// Dinner lines. The Dessert line is present only when a dessert is served.
func FormatDay(row Row) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📅 %s\n", row.Day)
	fmt.Fprintf(&b, "🌅 Breakfast: %s\n", row.Morning)
	fmt.Fprintf(&b, "🌞 Lunch: %s\n", row.Midday)
	fmt.Fprintf(&b, "🌙 Dinner: %s", row.Evening)
	if row.Dessert != DessertUnavailable {
		fmt.Fprintf(&b, "\n🍨 Dessert: %s", row.Dessert)
	}
	return b.String()
}

// FormatWeek renders the whole week, Sunday through Saturday.
func (r *Resolver) FormatWeek() string {
	blocks := make([]string, 0, 7)
	for _, row := range r.FullWeekMenu() {
		blocks = append(blocks, FormatDay(row))
	}
	return "🗓 Weekly Mess Menu\n\n" + strings.Join(blocks, "\n\n")
}
