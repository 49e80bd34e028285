package db

import (
	"context"
	"encoding/json"

	"github.com/apex/log"
	"github.com/localfixhq/localfix/models"
	"github.com/pkg/errors"
)

// ReportSlotKey is the slot every report persists into.
const ReportSlotKey = "localfix_reports"

// casRetries bounds how often a whole-blob write is retried after losing a
// compare-and-swap race.
const casRetries = 5

// ReportStore is the durable collection of all reports. The whole
// collection serializes as one JSON array, newest-first; every mutation is
// a read-modify-write of the full blob guarded by the slot version.
type ReportStore interface {
	// Load returns the current reports, newest first. A missing slot is an
	// empty store; there is no demo/seed fallback. Malformed persisted data
	// fails fast rather than being silently replaced.
	Load(ctx context.Context) ([]models.Report, error)
	// Append inserts the report at the front and persists the collection.
	Append(ctx context.Context, report models.Report) error
	// SetStatus updates the status of the report with the given id. An
	// unknown id is a silent no-op and performs no write at all.
	SetStatus(ctx context.Context, id string, status models.ReportStatus) error
	// Clear removes all persisted reports.
	Clear(ctx context.Context) error
}

type slotReportStore struct {
	slot Slot
}

// NewReportStore wraps a Slot in the report collection contract.
func NewReportStore(slot Slot) ReportStore {
	return &slotReportStore{slot: slot}
}

func (s *slotReportStore) Load(ctx context.Context) ([]models.Report, error) {
	reports, _, err := s.load(ctx)
	return reports, err
}

func (s *slotReportStore) load(ctx context.Context) ([]models.Report, int64, error) {
	data, version, err := s.slot.Read(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, "reading report slot")
	}
	if len(data) == 0 {
		return []models.Report{}, version, nil
	}
	var reports []models.Report
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, 0, errors.Wrap(err, "report slot holds malformed data")
	}
	return reports, version, nil
}

func (s *slotReportStore) Append(ctx context.Context, report models.Report) error {
	return s.update(ctx, func(reports []models.Report) ([]models.Report, bool) {
		return append([]models.Report{report}, reports...), true
	})
}

func (s *slotReportStore) SetStatus(ctx context.Context, id string, status models.ReportStatus) error {
	return s.update(ctx, func(reports []models.Report) ([]models.Report, bool) {
		for i := range reports {
			if reports[i].ID == id {
				reports[i].Status = status
				return reports, true
			}
		}
		return reports, false
	})
}

func (s *slotReportStore) Clear(ctx context.Context) error {
	if err := s.slot.Clear(ctx); err != nil {
		return errors.Wrap(err, "clearing report slot")
	}
	return nil
}

// update runs a read-modify-write cycle. The mutated collection is
// serialized before anything touches the slot, so a marshalling failure can
// never corrupt the persisted snapshot. Version conflicts re-read and
// retry.
func (s *slotReportStore) update(ctx context.Context, mutate func([]models.Report) ([]models.Report, bool)) error {
	for attempt := 1; attempt <= casRetries; attempt++ {
		reports, version, err := s.load(ctx)
		if err != nil {
			return err
		}
		next, changed := mutate(reports)
		if !changed {
			return nil
		}
		data, err := json.Marshal(next)
		if err != nil {
			return errors.Wrap(err, "serializing reports")
		}
		err = s.slot.Write(ctx, data, version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return errors.Wrap(err, "writing report slot")
		}
		log.WithField("attempt", attempt).Warn("report slot write conflict, retrying")
	}
	return errors.New("report slot under contention, giving up")
}
