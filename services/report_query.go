package services

import (
	"strings"

	"github.com/localfixhq/localfix/models"
)

// FilterReports narrows the feed by status and free-text search. Both
// conditions must hold. The search term matches case-insensitively against
// title, description and the location address; an empty term matches
// everything. Order is preserved.
func FilterReports(reports []models.Report, filter models.StatusFilter, search string) []models.Report {
	term := strings.ToLower(strings.TrimSpace(search))
	out := make([]models.Report, 0, len(reports))
	for _, r := range reports {
		if filter != models.FilterAll && r.Status != models.ReportStatus(filter) {
			continue
		}
		if term != "" && !matchesSearch(r, term) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesSearch(r models.Report, term string) bool {
	return strings.Contains(strings.ToLower(r.Title), term) ||
		strings.Contains(strings.ToLower(r.Description), term) ||
		strings.Contains(strings.ToLower(r.Location.Address), term)
}

// ComputeStats tallies the aggregate counters. It always runs over the full
// collection; the feed filter never changes the numbers shown above it.
func ComputeStats(reports []models.Report) models.ReportStats {
	stats := models.ReportStats{Total: len(reports)}
	for _, r := range reports {
		switch r.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusResolved:
			stats.Resolved++
		}
	}
	return stats
}
