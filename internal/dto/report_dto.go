package dto

import (
	"encoding/json"
	"time"

	"github.com/civicwatch-app/backend/internal/models"
	"github.com/google/uuid"
)

type SubmitReportRequest struct {
	Text        string   `json:"text"`
	MediaURL    string   `json:"media_url"`
	Tags        []string `json:"tags"`
	Mentions    []string `json:"mentions"`
	IsAnonymous bool     `json:"is_anonymous"`
}

type AddCommentRequest struct {
	Text string `json:"text"`
}

type ToggleReactionRequest struct {
	TargetType string    `json:"target_type"`
	TargetID   uuid.UUID `json:"target_id"`
	Type       string    `json:"type"`
}

type SuggestTagsRequest struct {
	Text string `json:"text"`
}

type SuggestTagsResponse struct {
	Tags []string `json:"tags"`
}

type IssueReportResponse struct {
	ID                uuid.UUID         `json:"id"`
	AuthorID          uuid.UUID         `json:"author_id"`
	IsAnonymous       bool              `json:"is_anonymous"`
	Text              string            `json:"text,omitempty"`
	MediaURL          string            `json:"media_url,omitempty"`
	Tags              []string          `json:"tags"`
	Mentions          []string          `json:"mentions"`
	Status            string            `json:"status"`
	ResolverID        *uuid.UUID        `json:"resolver_id,omitempty"`
	ResolutionNote    string            `json:"resolution_note,omitempty"`
	IsFromBlockedUser bool              `json:"is_from_blocked_user"`
	BlockID           string            `json:"block_id,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	Reactions         []models.Reaction `json:"reactions"`
	Comments          []CommentResponse `json:"comments"`
	AbuseReports      []AbuseReportView `json:"abuse_reports"`
}

type CommentResponse struct {
	ID           uuid.UUID         `json:"id"`
	AuthorID     uuid.UUID         `json:"author_id"`
	Text         string            `json:"text"`
	CreatedAt    time.Time         `json:"created_at"`
	Reactions    []models.Reaction `json:"reactions"`
	AbuseReports []AbuseReportView `json:"abuse_reports"`
}

// NewIssueReportResponse maps a loaded aggregate to its wire form, applying
// the viewer-role redaction rule to every nested abuse report.
func NewIssueReportResponse(r *models.IssueReport, viewerRole string) IssueReportResponse {
	comments := make([]CommentResponse, len(r.Comments))
	for i, c := range r.Comments {
		comments[i] = NewCommentResponse(&c, viewerRole)
	}

	return IssueReportResponse{
		ID:                r.ID,
		AuthorID:          r.AuthorID,
		IsAnonymous:       r.IsAnonymous,
		Text:              r.Text,
		MediaURL:          r.MediaURL,
		Tags:              jsonStrings(r.Tags),
		Mentions:          jsonStrings(r.Mentions),
		Status:            r.Status,
		ResolverID:        r.ResolverID,
		ResolutionNote:    r.ResolutionNote,
		IsFromBlockedUser: r.IsFromBlockedUser,
		BlockID:           r.BlockID,
		CreatedAt:         r.CreatedAt,
		Reactions:         nonNilReactions(r.Reactions),
		Comments:          comments,
		AbuseReports:      NewAbuseReportViews(r.AbuseReports, viewerRole),
	}
}

func NewCommentResponse(c *models.Comment, viewerRole string) CommentResponse {
	return CommentResponse{
		ID:           c.ID,
		AuthorID:     c.AuthorID,
		Text:         c.Text,
		CreatedAt:    c.CreatedAt,
		Reactions:    nonNilReactions(c.Reactions),
		AbuseReports: NewAbuseReportViews(c.AbuseReports, viewerRole),
	}
}

func jsonStrings(raw []byte) []string {
	var out []string
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func nonNilReactions(rs []models.Reaction) []models.Reaction {
	if rs == nil {
		return []models.Reaction{}
	}
	return rs
}
