package services

import (
	"testing"

	"github.com/localfixhq/localfix/models"
)

func feed() []models.Report {
	return []models.Report{
		{
			ID:          "3",
			Title:       "Huge pothole on Main St",
			Description: "Car-swallowing hole near the intersection",
			Status:      models.StatusPending,
			Location:    models.Location{Address: "12 Main St"},
		},
		{
			ID:          "2",
			Title:       "Streetlight out",
			Description: "Dark corner, pothole risk at night",
			Status:      models.StatusInProgress,
			Location:    models.Location{Address: "5 Oak Ave"},
		},
		{
			ID:          "1",
			Title:       "Overflowing bins",
			Description: "Garbage everywhere",
			Status:      models.StatusResolved,
			Location:    models.Location{Address: "Pothole Lane 3"},
		},
	}
}

func TestFilterReportsByStatus(t *testing.T) {
	got := FilterReports(feed(), models.StatusFilter(models.StatusResolved), "")
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected only the resolved report, got %+v", got)
	}

	all := FilterReports(feed(), models.FilterAll, "")
	if len(all) != 3 {
		t.Fatalf("expected all 3 reports, got %d", len(all))
	}
}

func TestFilterReportsSearchSpansFields(t *testing.T) {
	// "pothole" appears in a title, a description and an address; case must
	// not matter.
	got := FilterReports(feed(), models.FilterAll, "PoThOlE")
	if len(got) != 3 {
		t.Fatalf("expected search to match title, description and address, got %d reports", len(got))
	}
}

func TestFilterReportsSearchAndStatusCombine(t *testing.T) {
	got := FilterReports(feed(), models.StatusFilter(models.StatusPending), "pothole")
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("expected only the pending pothole report, got %+v", got)
	}
}

func TestFilterReportsPreservesOrder(t *testing.T) {
	got := FilterReports(feed(), models.FilterAll, "pothole")
	for i, want := range []string{"3", "2", "1"} {
		if got[i].ID != want {
			t.Fatalf("order not preserved: got %+v", got)
		}
	}
}

func TestFilterReportsSearchByTitle(t *testing.T) {
	reports := []models.Report{
		{ID: "3", Title: "C"},
		{ID: "2", Title: "B"},
		{ID: "1", Title: "A"},
	}
	got := FilterReports(reports, models.FilterAll, "B")
	if len(got) != 1 || got[0].Title != "B" {
		t.Fatalf("expected exactly [B], got %+v", got)
	}
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(feed())
	want := models.ReportStats{Total: 3, Pending: 1, InProgress: 1, Resolved: 1}
	if stats != want {
		t.Fatalf("ComputeStats() = %+v, want %+v", stats, want)
	}
}

func TestComputeStatsIgnoresFilters(t *testing.T) {
	reports := feed()
	_ = FilterReports(reports, models.StatusFilter(models.StatusResolved), "bins")
	stats := ComputeStats(reports)
	if stats.Total != 3 {
		t.Fatalf("stats must come from the unfiltered set, got total %d", stats.Total)
	}
}
