package services

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/localfixhq/localfix/authz"
	"github.com/localfixhq/localfix/config"
	"github.com/localfixhq/localfix/db"
	apiError "github.com/localfixhq/localfix/errors"
	"github.com/localfixhq/localfix/models"
)

// FeedPublisher pushes newly accepted reports to live feed subscribers.
type FeedPublisher interface {
	Publish(report models.Report)
}

// StatusMailer notifies a reporter that the status of their report changed.
type StatusMailer interface {
	SendStatusUpdate(ctx context.Context, recipient string, report *models.Report, status models.ReportStatus)
}

// ReportService interface
type ReportService interface {
	Submit(ctx context.Context, draft *models.ReportDraft, session *models.SessionUser) (*models.Report, *apiError.Error)
	List(ctx context.Context, filter models.StatusFilter, search string) ([]models.Report, models.ReportStats, *apiError.Error)
	UpdateStatus(ctx context.Context, actor *models.User, id string, status models.ReportStatus) *apiError.Error
	ClearAll(ctx context.Context, actor *models.User) *apiError.Error
}

// reportService struct
type reportService struct {
	Config     *config.Config
	store      db.ReportStore
	authorizer authz.Authorizer
	feed       FeedPublisher
	mail       StatusMailer
}

// NewReportService instantiate a reportService. Feed and mail may be nil;
// both are best-effort side channels.
func NewReportService(store db.ReportStore, authorizer authz.Authorizer, feed FeedPublisher, mail StatusMailer, conf *config.Config) ReportService {
	return &reportService{
		Config:     conf,
		store:      store,
		authorizer: authorizer,
		feed:       feed,
		mail:       mail,
	}
}

// Submit validates a draft, stamps the submitter's identity onto it and
// persists it as a pending report at the head of the feed. Validation runs
// in a fixed order so the submitter always hears about the first missing
// piece: category, then photo, then location.
func (s *reportService) Submit(ctx context.Context, draft *models.ReportDraft, session *models.SessionUser) (*models.Report, *apiError.Error) {
	if draft.Category == "" || !draft.Category.Valid() {
		return nil, apiError.ErrCategoryRequired
	}
	if draft.ImageURL == "" {
		return nil, apiError.ErrPhotoRequired
	}
	if strings.TrimSpace(draft.Location.Address) == "" {
		return nil, apiError.ErrLocationRequired
	}

	userID, userName := models.AnonymousUserID, models.AnonymousUserName
	if session != nil {
		if session.Email != "" {
			userID = session.Email
		}
		if session.Name != "" {
			userName = session.Name
		}
	}

	// Submission is paced on purpose; a cancelled request gives up before
	// anything is persisted.
	if s.Config.SubmitDelay > 0 {
		select {
		case <-time.After(s.Config.SubmitDelay):
		case <-ctx.Done():
			return nil, apiError.New("request cancelled", http.StatusRequestTimeout)
		}
	}

	report := models.Report{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(draft.Title),
		Description: strings.TrimSpace(draft.Description),
		Category:    draft.Category,
		ImageURL:    draft.ImageURL,
		Location:    draft.Location,
		Status:      models.StatusPending,
		CreatedAt:   time.Now().UTC(),
		UserID:      userID,
		UserName:    userName,
	}

	if err := s.store.Append(ctx, report); err != nil {
		log.Printf("Submit error persisting report: %v", err)
		return nil, apiError.ErrPersistence
	}

	if s.feed != nil {
		s.feed.Publish(report)
	}

	return &report, nil
}

// List returns the feed narrowed by filter and search, plus the aggregate
// stats. Stats always reflect the full store, never the filtered view.
func (s *reportService) List(ctx context.Context, filter models.StatusFilter, search string) ([]models.Report, models.ReportStats, *apiError.Error) {
	reports, err := s.store.Load(ctx)
	if err != nil {
		log.Printf("List error loading reports: %v", err)
		return nil, models.ReportStats{}, apiError.ErrPersistence
	}
	return FilterReports(reports, filter, search), ComputeStats(reports), nil
}

// UpdateStatus moves a report to the given status. Any status may follow
// any other. An unknown id changes nothing and is not an error.
func (s *reportService) UpdateStatus(ctx context.Context, actor *models.User, id string, status models.ReportStatus) *apiError.Error {
	if !s.authorizer.IsAuthorized(actor, authz.ActionUpdateReportStatus) {
		return apiError.ErrForbidden
	}
	if !status.Valid() {
		return apiError.New("unknown status", http.StatusBadRequest)
	}

	var target *models.Report
	if s.mail != nil {
		reports, err := s.store.Load(ctx)
		if err != nil {
			log.Printf("UpdateStatus error loading reports: %v", err)
			return apiError.ErrPersistence
		}
		for i := range reports {
			if reports[i].ID == id {
				target = &reports[i]
				break
			}
		}
	}

	if err := s.store.SetStatus(ctx, id, status); err != nil {
		log.Printf("UpdateStatus error persisting status: %v", err)
		return apiError.ErrPersistence
	}

	if s.mail != nil && target != nil {
		s.mail.SendStatusUpdate(ctx, target.UserID, target, status)
	}

	return nil
}

// ClearAll wipes every persisted report.
func (s *reportService) ClearAll(ctx context.Context, actor *models.User) *apiError.Error {
	if !s.authorizer.IsAuthorized(actor, authz.ActionClearReports) {
		return apiError.ErrForbidden
	}
	if err := s.store.Clear(ctx); err != nil {
		log.Printf("ClearAll error: %v", err)
		return apiError.ErrPersistence
	}
	return nil
}
