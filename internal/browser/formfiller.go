// Package browser provides best-effort pre-filling of the complaint portal
// form using a headless Chrome instance.
//
// This is a convenience helper, not a correctness concern: the intake flow
// already hands the user a pre-filled URL and manual-entry instructions.
// Any failure here is logged and swallowed. The user still completes the
// CAPTCHA and submits the form themselves.
package browser

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

// FormData carries the collected intake fields into the portal form.
type FormData struct {
	Email       string
	Name        string
	Phone       string
	Room        string
	Summary     string
	Description string
}

// NewContext creates a headless Chrome context for form filling.
//
// Returns:
//   - context.Context: Browser context for automation
//   - context.CancelFunc: Function to cancel and cleanup
func NewContext() (context.Context, context.CancelFunc) {
	log.Println("  → Creating new browser context...")
	ctx, cancel := chromedp.NewContext(
		context.Background(),
		chromedp.WithLogf(log.Printf),
	)
	log.Println("  ✓ Browser context created successfully")
	return ctx, cancel
}

// FillComplaintForm navigates to the portal and fills every form field it
// can find by name or id.
//
// Flow:
//  1. Navigate to the portal page
//  2. Wait for a form element to appear
//  3. Set values for each candidate field name via one script evaluation
//
// The portal's field names are guessed from common osTicket conventions, so
// several synonyms are attempted per value; whatever exists gets filled.
//
// Parameters:
//   - ctx: Browser context, typically with a navigation timeout applied
//   - portalURL: The pre-filled GET URL (the query string doubles as a
//     fallback if scripted filling finds nothing)
//   - data: Collected intake fields
//
// Returns:
//   - error: Navigation or evaluation failure; callers log and move on
func FillComplaintForm(ctx context.Context, portalURL string, data FormData) error {
	summary := fmt.Sprintf("Room %s - %s", data.Room, data.Summary)
	location := fmt.Sprintf("Room %s", data.Room)

	fields := []struct {
		name  string
		value string
	}{
		{"email", data.Email},
		{"name", data.Name},
		{"fullname", data.Name},
		{"phone", data.Phone},
		{"mobile", data.Phone},
		{"subject", summary},
		{"summary", summary},
		{"message", data.Description},
		{"issue", data.Description},
		{"location", location},
		{"room", data.Room},
	}

	log.Println("  → Opening complaint portal for pre-fill...")
	err := chromedp.Run(ctx,
		chromedp.Navigate(portalURL),
		chromedp.WaitVisible("form", chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("failed to load portal form: %w", err)
	}

	var filled []string
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		var ok bool
		// Try input/textarea by name, then by id.
		script := fmt.Sprintf(`(function(name, value) {
			const el = document.querySelector("input[name='" + name + "'], textarea[name='" + name + "']") ||
				document.getElementById(name);
			if (!el) return false;
			el.value = value;
			el.dispatchEvent(new Event("input", { bubbles: true }));
			return true;
		})(%q, %q)`, f.name, f.value)

		if err := chromedp.Run(ctx, chromedp.Evaluate(script, &ok)); err != nil {
			log.Printf("  ⚠️  Could not fill %s: %v", f.name, err)
			continue
		}
		if ok {
			filled = append(filled, f.name)
		}
	}

	log.Printf("  ✓ Pre-filled %d portal fields: %v", len(filled), filled)
	log.Println("  📝 CAPTCHA and submission are left to the user")
	return nil
}

// Autofill is the fire-and-forget entry point used after intake completes.
// It creates its own browser context with a timeout, runs the fill, and
// logs any failure.
func Autofill(portalURL string, data FormData, timeout time.Duration) {
	ctx, cancel := NewContext()
	defer cancel()

	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	defer cancelTimeout()

	if err := FillComplaintForm(ctx, portalURL, data); err != nil {
		log.Println("⚠️  Portal pre-fill failed (user falls back to the link):", err)
	}
}
