package db

import (
	"context"
	"testing"
	"time"

	"github.com/localfixhq/localfix/models"
)

func sampleReport(id, title string) models.Report {
	return models.Report{
		ID:          id,
		Title:       title,
		Description: "something broken",
		Category:    models.CategoryPothole,
		ImageURL:    "https://cdn.example.com/p.jpg",
		Location:    models.Location{Address: "12 Main St", Lat: 40.7, Lng: -74.0},
		Status:      models.StatusPending,
		CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		UserID:      models.AnonymousUserID,
		UserName:    models.AnonymousUserName,
	}
}

func TestReportStoreMissingSlotIsEmpty(t *testing.T) {
	store := NewReportStore(NewMemSlot())

	reports, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(reports) != 0 {
		t.Fatalf("missing slot must load as empty, got %+v", reports)
	}
}

func TestReportStoreAppendNewestFirst(t *testing.T) {
	store := NewReportStore(NewMemSlot())
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := store.Append(ctx, sampleReport(id, "report "+id)); err != nil {
			t.Fatalf("Append(%s) error: %v", id, err)
		}
	}

	reports, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []string{"c", "b", "a"} {
		if reports[i].ID != want {
			t.Fatalf("expected newest first [c b a], got %+v", reports)
		}
	}
}

func TestReportStoreRoundTripPreservesFields(t *testing.T) {
	store := NewReportStore(NewMemSlot())
	ctx := context.Background()

	want := sampleReport("r1", "Pothole")
	if err := store.Append(ctx, want); err != nil {
		t.Fatal(err)
	}

	reports, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	got := reports[0]
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("CreatedAt changed: got %v, want %v", got.CreatedAt, want.CreatedAt)
	}
	got.CreatedAt = want.CreatedAt
	if got != want {
		t.Fatalf("round trip changed the report:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestReportStoreSetStatus(t *testing.T) {
	store := NewReportStore(NewMemSlot())
	ctx := context.Background()

	if err := store.Append(ctx, sampleReport("r1", "Pothole")); err != nil {
		t.Fatal(err)
	}

	// Every status may follow every other.
	for _, status := range []models.ReportStatus{
		models.StatusInProgress,
		models.StatusPending,
		models.StatusResolved,
		models.StatusInProgress,
		models.StatusInProgress,
	} {
		if err := store.SetStatus(ctx, "r1", status); err != nil {
			t.Fatalf("SetStatus(%s) error: %v", status, err)
		}
		reports, err := store.Load(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if reports[0].Status != status {
			t.Fatalf("status = %s, want %s", reports[0].Status, status)
		}
	}
}

func TestReportStoreSetStatusUnknownIDWritesNothing(t *testing.T) {
	slot := NewMemSlot()
	store := NewReportStore(slot)
	ctx := context.Background()

	if err := store.Append(ctx, sampleReport("r1", "Pothole")); err != nil {
		t.Fatal(err)
	}
	before, beforeVersion, err := slot.Read(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if err := store.SetStatus(ctx, "nope", models.StatusResolved); err != nil {
		t.Fatalf("unknown id must be a silent no-op, got %v", err)
	}

	after, afterVersion, err := slot.Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) || beforeVersion != afterVersion {
		t.Fatal("unknown id caused a write")
	}
}

func TestReportStoreClear(t *testing.T) {
	store := NewReportStore(NewMemSlot())
	ctx := context.Background()

	if err := store.Append(ctx, sampleReport("r1", "Pothole")); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}

	reports, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 0 {
		t.Fatalf("expected empty store after clear, got %+v", reports)
	}
}

func TestReportStoreMalformedSlotFailsFast(t *testing.T) {
	slot := NewMemSlot()
	ctx := context.Background()
	if err := slot.Write(ctx, []byte(`{not json`), 0); err != nil {
		t.Fatal(err)
	}

	store := NewReportStore(slot)
	if _, err := store.Load(ctx); err == nil {
		t.Fatal("malformed persisted data must surface as an error, not as an empty store")
	}
	if err := store.Append(ctx, sampleReport("r1", "Pothole")); err == nil {
		t.Fatal("a write must never silently replace a malformed snapshot")
	}
}

// conflictSlot injects version conflicts into the first n writes.
type conflictSlot struct {
	Slot
	remaining int
}

func (c *conflictSlot) Write(ctx context.Context, data []byte, expectedVersion int64) error {
	if c.remaining > 0 {
		c.remaining--
		return ErrVersionConflict
	}
	return c.Slot.Write(ctx, data, expectedVersion)
}

func TestReportStoreRetriesOnConflict(t *testing.T) {
	slot := &conflictSlot{Slot: NewMemSlot(), remaining: 2}
	store := NewReportStore(slot)
	ctx := context.Background()

	if err := store.Append(ctx, sampleReport("r1", "Pothole")); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}

	reports, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected the report to land after retries, got %+v", reports)
	}
}

func TestReportStoreGivesUpUnderContention(t *testing.T) {
	slot := &conflictSlot{Slot: NewMemSlot(), remaining: 100}
	store := NewReportStore(slot)

	if err := store.Append(context.Background(), sampleReport("r1", "Pothole")); err == nil {
		t.Fatal("expected an error when every retry conflicts")
	}
}

func TestFileSlotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	slot, err := NewFileSlot(dir, ReportSlotKey)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	// Missing file reads as an absent slot.
	data, version, err := slot.Read(ctx)
	if err != nil || data != nil || version != 0 {
		t.Fatalf("missing file must read as (nil, 0, nil), got (%v, %d, %v)", data, version, err)
	}

	if err := slot.Write(ctx, []byte(`[1]`), 0); err != nil {
		t.Fatalf("initial write error: %v", err)
	}
	data, version, err = slot.Read(ctx)
	if err != nil || string(data) != `[1]` || version != 1 {
		t.Fatalf("Read() = (%s, %d, %v), want ([1], 1, nil)", data, version, err)
	}

	// Stale version must conflict.
	if err := slot.Write(ctx, []byte(`[2]`), 0); err != ErrVersionConflict {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}

	if err := slot.Write(ctx, []byte(`[2]`), 1); err != nil {
		t.Fatalf("versioned write error: %v", err)
	}

	if err := slot.Clear(ctx); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	// Clearing twice is fine.
	if err := slot.Clear(ctx); err != nil {
		t.Fatalf("second Clear() error: %v", err)
	}

	data, version, err = slot.Read(ctx)
	if err != nil || data != nil || version != 0 {
		t.Fatalf("cleared slot must read as missing, got (%v, %d, %v)", data, version, err)
	}
}
