package dto

import (
	"time"

	"github.com/civicwatch-app/backend/internal/models"
	"github.com/google/uuid"
)

type FileAbuseReportRequest struct {
	TargetType  string    `json:"target_type"`
	TargetID    uuid.UUID `json:"target_id"`
	Reason      string    `json:"reason"`
	IsAnonymous bool      `json:"is_anonymous"`
}

type ResolveRequest struct {
	Note string `json:"note"`
}

// AbuseReportView is the viewer-facing shape of an abuse report. The
// reporter's identity is visible to admins unconditionally and to everyone
// else only when the complaint was filed non-anonymously; otherwise the
// reporter field is absent.
type AbuseReportView struct {
	ID          uuid.UUID  `json:"id"`
	ReporterID  *uuid.UUID `json:"reporter_id,omitempty"`
	IsAnonymous bool       `json:"is_anonymous"`
	Reason      string     `json:"reason"`
	CreatedAt   time.Time  `json:"created_at"`
}

func NewAbuseReportView(a *models.AbuseReport, viewerRole string) AbuseReportView {
	view := AbuseReportView{
		ID:          a.ID,
		IsAnonymous: a.IsAnonymous,
		Reason:      a.Reason,
		CreatedAt:   a.CreatedAt,
	}
	if viewerRole == models.RoleAdmin || !a.IsAnonymous {
		id := a.ReporterID
		view.ReporterID = &id
	}
	return view
}

func NewAbuseReportViews(as []models.AbuseReport, viewerRole string) []AbuseReportView {
	views := make([]AbuseReportView, len(as))
	for i, a := range as {
		views[i] = NewAbuseReportView(&a, viewerRole)
	}
	return views
}
