// Package complaint implements the maintenance-complaint intake workflow:
// detection, categorization, the per-session collection state machine, and
// construction of the pre-filled portal URL.
package complaint

import "strings"

// Category is the fixed-enumeration bucket assigned to a complaint when the
// intake starts. It is computed once from the triggering message and never
// recomputed; later answers in the flow cannot change it.
type Category string

const (
	CategoryElectrical     Category = "Electrical"
	CategoryPlumbing       Category = "Plumbing"
	CategoryInternet       Category = "Internet/WiFi"
	CategoryMessFood       Category = "Mess/Food"
	CategoryCleanliness    Category = "Cleanliness"
	CategoryInfrastructure Category = "Infrastructure"
	CategoryServices       Category = "Hostel Services"
	CategoryGeneral        Category = "General"
)

// detectionKeywords is the fixed set that marks a message as the start of a
// complaint. Matching is plain substring search over the lower-cased
// message, not tokenized, so generic words like "issue" or "problem" can
// over-trigger on unrelated questions. That permissiveness is a known
// precision/recall tradeoff, kept deliberately.
var detectionKeywords = []string{
	// Infrastructure issues
	"fan not working", "fan broken", "fan issue", "ceiling fan",
	"light not working", "light broken", "bulb not working", "electricity",
	"water problem", "no water", "tap not working", "plumbing",
	"wifi", "wi-fi", "internet", "network", "connection",
	"ac not working", "air conditioner", "cooling problem",
	"door broken", "lock issue", "window broken",

	// Cleanliness and maintenance
	"room dirty", "bathroom dirty", "cleaning issue", "garbage",
	"pest problem", "insects", "cockroach", "rats",
	"paint peeling", "wall damage", "ceiling leak",

	// Mess and food issues
	"food quality", "mess problem", "bad food", "food complaint",
	"hygiene issue", "kitchen problem",

	// Hostel services
	"laundry problem", "security issue", "noise complaint",
	"common room", "study room issue",

	// General complaint phrases
	"complain", "complaint", "problem", "issue", "broken",
	"not working", "malfunctioning", "damaged", "faulty",
}

// categoryRule pairs a category with the keywords that select it.
type categoryRule struct {
	category Category
	keywords []string
}

// categoryRules are evaluated in order; the first rule with a matching
// keyword wins. The order is the priority: electrical beats plumbing beats
// internet, and so on down to the General default.
var categoryRules = []categoryRule{
	{CategoryElectrical, []string{"fan", "light", "bulb", "electricity", "ac", "air conditioner"}},
	{CategoryPlumbing, []string{"water", "tap", "plumbing", "bathroom", "toilet"}},
	{CategoryInternet, []string{"wifi", "internet", "network"}},
	{CategoryMessFood, []string{"food", "mess", "kitchen", "hygiene"}},
	{CategoryCleanliness, []string{"cleaning", "dirty", "garbage", "pest"}},
	{CategoryInfrastructure, []string{"door", "window", "lock", "paint", "wall", "ceiling"}},
	{CategoryServices, []string{"noise", "security", "common room"}},
}

// Detect reports whether a message reads like the start of a complaint.
func Detect(message string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range detectionKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// Categorize assigns the complaint category for a triggering message.
func Categorize(message string) Category {
	lower := strings.ToLower(message)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.category
			}
		}
	}
	return CategoryGeneral
}
