package dispatcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"aryabot/internal/complaint"
	"aryabot/internal/menu"
	"aryabot/internal/photos"
)

// fakeAnswerer is a canned answer backend.
type fakeAnswerer struct {
	reply string
	err   error
	asked []string
}

func (f *fakeAnswerer) Answer(_ context.Context, question string) (string, error) {
	f.asked = append(f.asked, question)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func testMenuResolver(t *testing.T) *menu.Resolver {
	t.Helper()
	rows := make([]menu.Row, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		rows = append(rows, menu.Row{
			Day:     d,
			Morning: "Poha",
			Midday:  "Rice, Dal",
			Evening: "Roti",
			Dessert: menu.DessertUnavailable,
		})
	}
	table, err := menu.NewTable(rows)
	if err != nil {
		t.Fatal(err)
	}
	return menu.NewResolver(table, time.UTC)
}

func newTestDispatcher(t *testing.T, catalog *photos.Catalog, answerer *fakeAnswerer) *Dispatcher {
	t.Helper()
	engine := complaint.NewEngine(complaint.NewStore(), "https://portal.example/open.php")
	d := New(engine, testMenuResolver(t), catalog, nil)
	if answerer != nil {
		d.answerer = answerer
	}
	d.now = func() time.Time {
		return time.Date(2026, time.January, 5, 13, 0, 0, 0, time.UTC) // Monday lunch
	}
	return d
}

func TestHandleEmptyMessage(t *testing.T) {
	d := newTestDispatcher(t, nil, nil)
	resp := d.Handle(context.Background(), "u1", "   ")
	if resp.Text != emptyReply {
		t.Errorf("got %q", resp.Text)
	}
}

func TestHandleComplaintOpensIntake(t *testing.T) {
	d := newTestDispatcher(t, nil, nil)
	resp := d.Handle(context.Background(), "u1", "the fan in my room is broken")
	if !strings.Contains(resp.Text, "name") {
		t.Errorf("intake should ask for a name, got %q", resp.Text)
	}
	if resp.IntakeDone {
		t.Error("intake should not be done after the opening message")
	}
}

// A message that looks like a new complaint must be consumed by the active
// intake rather than opening a second one.
func TestActiveIntakeConsumesComplaintLookingMessage(t *testing.T) {
	backend := &fakeAnswerer{reply: "unreached"}
	d := newTestDispatcher(t, nil, backend)
	ctx := context.Background()

	d.Handle(ctx, "u1", "wifi not working in my room")
	resp := d.Handle(ctx, "u1", "the tap is leaking") // looks like a complaint, is the name answer
	if !strings.Contains(resp.Text, "email") {
		t.Errorf("expected email prompt, got %q", resp.Text)
	}
	if len(backend.asked) != 0 {
		t.Errorf("answer backend consulted mid-intake: %v", backend.asked)
	}
}

func TestIntakeRunsToCompletion(t *testing.T) {
	d := newTestDispatcher(t, nil, nil)
	ctx := context.Background()

	d.Handle(ctx, "u1", "my room light is not working")
	d.Handle(ctx, "u1", "Arya Sharma")
	d.Handle(ctx, "u1", "arya@iet.ac.in")
	d.Handle(ctx, "u1", "9876543210")
	resp := d.Handle(ctx, "u1", "B-214")

	if !resp.IntakeDone {
		t.Fatal("intake should be complete")
	}
	if !strings.HasPrefix(resp.PortalURL, "https://portal.example/open.php?") {
		t.Errorf("portal URL = %q", resp.PortalURL)
	}
	if resp.Fields[complaint.FieldRoom] != "B-214" {
		t.Errorf("fields = %v", resp.Fields)
	}
	if resp.ComplaintText != "my room light is not working" {
		t.Errorf("complaint text = %q", resp.ComplaintText)
	}
}

func TestCancelCommand(t *testing.T) {
	d := newTestDispatcher(t, nil, nil)
	ctx := context.Background()

	if resp := d.Handle(ctx, "u1", "cancel"); resp.Text != noCancelReply {
		t.Errorf("got %q", resp.Text)
	}

	d.Handle(ctx, "u1", "broken chair in my room")
	if resp := d.Handle(ctx, "u1", "/cancel"); resp.Text != cancelledReply {
		t.Errorf("got %q", resp.Text)
	}
	if resp := d.Handle(ctx, "u1", "cancel"); resp.Text != noCancelReply {
		t.Errorf("second cancel got %q", resp.Text)
	}
}

func TestMidSentenceCancelIsNotACommand(t *testing.T) {
	backend := &fakeAnswerer{reply: "sure"}
	d := newTestDispatcher(t, nil, backend)
	resp := d.Handle(context.Background(), "u1", "how do I cancel a booking")
	if resp.Text != "sure" {
		t.Errorf("got %q", resp.Text)
	}
}

func TestMenuRouting(t *testing.T) {
	d := newTestDispatcher(t, nil, nil)
	ctx := context.Background()

	tests := []struct {
		message string
		want    string
	}{
		{"what's on the menu today", "Lunch"},
		{"menu for saturday please", "Saturday"},
		{"show the menu for the week", "Weekly Mess Menu"},
	}
	for _, tt := range tests {
		resp := d.Handle(ctx, "u1", tt.message)
		if !strings.Contains(resp.Text, tt.want) {
			t.Errorf("Handle(%q) missing %q:\n%s", tt.message, tt.want, resp.Text)
		}
	}
}

func TestPhotoRouting(t *testing.T) {
	dir := t.TempDir()
	catalog := photos.NewCatalog(dir)
	if err := catalog.Setup(); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "rooms", "rooms", "room1.jpg")
	if err := os.WriteFile(path, []byte("jpg"), 0644); err != nil {
		t.Fatal(err)
	}

	d := newTestDispatcher(t, catalog, nil)
	resp := d.Handle(context.Background(), "u1", "show me photos of the rooms")
	if resp.Text != photosReply || len(resp.Photos) != 1 || resp.Photos[0] != path {
		t.Errorf("got text %q, photos %v", resp.Text, resp.Photos)
	}
}

func TestPhotoQueryWithNoMatchesFallsThrough(t *testing.T) {
	catalog := photos.NewCatalog(t.TempDir())
	backend := &fakeAnswerer{reply: "from backend"}
	d := newTestDispatcher(t, catalog, backend)

	resp := d.Handle(context.Background(), "u1", "show me pictures of the gym")
	if resp.Text != "from backend" {
		t.Errorf("got %q", resp.Text)
	}
}

func TestAnswererErrorBecomesApology(t *testing.T) {
	backend := &fakeAnswerer{err: errors.New("connection refused")}
	d := newTestDispatcher(t, nil, backend)

	resp := d.Handle(context.Background(), "u1", "when was the hostel built")
	if resp.Text != apologyReply {
		t.Errorf("got %q", resp.Text)
	}
	if strings.Contains(resp.Text, "connection refused") {
		t.Error("raw error text leaked to the user")
	}
}

func TestNilAnswererFallsBackToStaticReply(t *testing.T) {
	d := newTestDispatcher(t, nil, nil)
	resp := d.Handle(context.Background(), "u1", "when was the hostel built")
	if resp.Text != staticReply {
		t.Errorf("got %q", resp.Text)
	}
}
