package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/localfixhq/localfix/authz"
	"github.com/localfixhq/localfix/config"
	"github.com/localfixhq/localfix/db"
	apiError "github.com/localfixhq/localfix/errors"
	"github.com/localfixhq/localfix/models"
)

func newTestService() (ReportService, db.ReportStore) {
	store := db.NewReportStore(db.NewMemSlot())
	conf := &config.Config{SubmitDelay: 0}
	svc := NewReportService(store, authz.NewRolePolicy(), nil, nil, conf)
	return svc, store
}

func validDraft() *models.ReportDraft {
	return &models.ReportDraft{
		Title:       "Huge pothole",
		Description: "Deep hole in the road",
		Category:    models.CategoryPothole,
		ImageURL:    "https://cdn.example.com/pothole.jpg",
		Location:    models.Location{Address: "12 Main St", Lat: 40.7, Lng: -74.0},
	}
}

func adminUser() *models.User {
	return &models.User{Role: models.Role{Name: models.RoleAdmin}}
}

func TestSubmitCreatesPendingReport(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	report, apiErr := svc.Submit(ctx, validDraft(), &models.SessionUser{Name: "Jane Doe", Email: "jane@example.com"})
	if apiErr != nil {
		t.Fatalf("Submit() error: %v", apiErr)
	}
	if report.ID == "" {
		t.Error("expected a generated id")
	}
	if report.Status != models.StatusPending {
		t.Errorf("new report status = %s, want pending", report.Status)
	}
	if report.UserID != "jane@example.com" || report.UserName != "Jane Doe" {
		t.Errorf("identity not stamped: %s / %s", report.UserID, report.UserName)
	}

	persisted, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(persisted) != 1 || persisted[0].ID != report.ID {
		t.Fatalf("report not persisted: %+v", persisted)
	}
}

func TestSubmitStampsAnonymousIdentity(t *testing.T) {
	svc, _ := newTestService()

	report, apiErr := svc.Submit(context.Background(), validDraft(), nil)
	if apiErr != nil {
		t.Fatalf("Submit() error: %v", apiErr)
	}
	if report.UserID != models.AnonymousUserID || report.UserName != models.AnonymousUserName {
		t.Errorf("expected anonymous identity, got %s / %s", report.UserID, report.UserName)
	}
}

func TestSubmitValidationOrder(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	// A draft missing everything must complain about the category first,
	// then the photo, then the location.
	draft := validDraft()
	draft.Category = ""
	draft.ImageURL = ""
	draft.Location.Address = ""

	if _, apiErr := svc.Submit(ctx, draft, nil); apiErr != apiError.ErrCategoryRequired {
		t.Fatalf("expected category error first, got %v", apiErr)
	}

	draft.Category = models.CategoryGarbage
	if _, apiErr := svc.Submit(ctx, draft, nil); apiErr != apiError.ErrPhotoRequired {
		t.Fatalf("expected photo error second, got %v", apiErr)
	}

	draft.ImageURL = "https://cdn.example.com/garbage.jpg"
	if _, apiErr := svc.Submit(ctx, draft, nil); apiErr != apiError.ErrLocationRequired {
		t.Fatalf("expected location error third, got %v", apiErr)
	}

	// None of the rejected drafts may have been persisted.
	persisted, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(persisted) != 0 {
		t.Fatalf("rejected drafts were persisted: %+v", persisted)
	}
}

func TestSubmitRejectsUnknownCategory(t *testing.T) {
	svc, _ := newTestService()
	draft := validDraft()
	draft.Category = "volcano"

	if _, apiErr := svc.Submit(context.Background(), draft, nil); apiErr == nil {
		t.Fatal("expected an error for an unknown category")
	}
}

func TestSubmitNewestFirst(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C"} {
		draft := validDraft()
		draft.Title = title
		if _, apiErr := svc.Submit(ctx, draft, nil); apiErr != nil {
			t.Fatalf("Submit(%s) error: %v", title, apiErr)
		}
	}

	persisted, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []string{"C", "B", "A"} {
		if persisted[i].Title != want {
			t.Fatalf("expected newest first [C B A], got %+v", persisted)
		}
	}
}

func TestUpdateStatusRequiresAdmin(t *testing.T) {
	svc, _ := newTestService()
	member := &models.User{Role: models.Role{Name: models.RoleUser}}

	if apiErr := svc.UpdateStatus(context.Background(), member, "some-id", models.StatusResolved); apiErr == nil || apiErr.Status != http.StatusForbidden {
		t.Fatalf("expected forbidden, got %v", apiErr)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	report, apiErr := svc.Submit(ctx, validDraft(), nil)
	if apiErr != nil {
		t.Fatal(apiErr)
	}

	// Any status may follow any other, including a step back to pending.
	for _, status := range []models.ReportStatus{
		models.StatusInProgress,
		models.StatusResolved,
		models.StatusPending,
		models.StatusResolved,
		models.StatusResolved,
	} {
		if apiErr := svc.UpdateStatus(ctx, adminUser(), report.ID, status); apiErr != nil {
			t.Fatalf("UpdateStatus(%s) error: %v", status, apiErr)
		}
		reports, _, listErr := svc.List(ctx, models.FilterAll, "")
		if listErr != nil {
			t.Fatal(listErr)
		}
		if reports[0].Status != status {
			t.Fatalf("status = %s, want %s", reports[0].Status, status)
		}
	}
}

func TestUpdateStatusUnknownIDIsNoOp(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	if _, apiErr := svc.Submit(ctx, validDraft(), nil); apiErr != nil {
		t.Fatal(apiErr)
	}
	before, _ := store.Load(ctx)

	if apiErr := svc.UpdateStatus(ctx, adminUser(), "no-such-id", models.StatusResolved); apiErr != nil {
		t.Fatalf("unknown id must not be an error, got %v", apiErr)
	}

	after, _ := store.Load(ctx)
	if len(before) != len(after) || before[0].Status != after[0].Status {
		t.Fatalf("store changed on unknown id: before %+v after %+v", before, after)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService()

	if apiErr := svc.UpdateStatus(context.Background(), adminUser(), "id", "archived"); apiErr == nil {
		t.Fatal("expected an error for an unknown status")
	}
}

func TestClearAll(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	if _, apiErr := svc.Submit(ctx, validDraft(), nil); apiErr != nil {
		t.Fatal(apiErr)
	}

	member := &models.User{Role: models.Role{Name: models.RoleUser}}
	if apiErr := svc.ClearAll(ctx, member); apiErr == nil {
		t.Fatal("expected forbidden for non-admin clear")
	}

	if apiErr := svc.ClearAll(ctx, adminUser()); apiErr != nil {
		t.Fatalf("ClearAll() error: %v", apiErr)
	}

	reports, err := store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 0 {
		t.Fatalf("expected empty store after clear, got %+v", reports)
	}
}
