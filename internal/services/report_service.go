package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/civicwatch-app/backend/internal/dto"
	"github.com/civicwatch-app/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Enricher is the optional text-generation gateway. Implementations must
// degrade to identity/empty on any failure; the report service never checks
// an error from it.
type Enricher interface {
	SuggestTags(ctx context.Context, text string) []string
	Censor(ctx context.Context, text string) string
}

// ReportService is the report store: submission, comments and reactions.
type ReportService struct {
	db        *gorm.DB
	enricher  Enricher
	aiTimeout time.Duration
}

func NewReportService(db *gorm.DB, enricher Enricher, aiTimeout time.Duration) *ReportService {
	return &ReportService{db: db, enricher: enricher, aiTimeout: aiTimeout}
}

// Submit creates a new issue report with status active. Text runs through
// the censorship gateway best-effort before storage; a slow or failing
// gateway leaves the text unchanged.
func (s *ReportService) Submit(authorID uuid.UUID, req *dto.SubmitReportRequest) (*models.IssueReport, error) {
	if strings.TrimSpace(req.Text) == "" && strings.TrimSpace(req.MediaURL) == "" {
		return nil, ErrInvalidInput
	}
	if _, err := getUser(s.db, authorID); err != nil {
		return nil, err
	}

	text := req.Text
	if s.enricher != nil && text != "" {
		ctx, cancel := context.WithTimeout(context.Background(), s.aiTimeout)
		text = s.enricher.Censor(ctx, text)
		cancel()
	}

	tags := make([]string, 0, len(req.Tags))
	for _, t := range req.Tags {
		if n := NormalizeTag(t); n != "" {
			tags = append(tags, n)
		}
	}

	report := models.IssueReport{
		ID:          uuid.New(),
		AuthorID:    authorID,
		IsAnonymous: req.IsAnonymous,
		Text:        text,
		MediaURL:    req.MediaURL,
		Tags:        mustJSON(tags),
		Mentions:    mustJSON(req.Mentions),
		Status:      models.StatusActive,
		CreatedAt:   time.Now(),
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// AddComment appends a comment to a report. Insertion order is the
// presentation order (created_at ascending).
func (s *ReportService) AddComment(authorID, reportID uuid.UUID, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidInput
	}
	if _, err := s.getReport(reportID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:        uuid.New(),
		ReportID:  reportID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ToggleReaction applies the three-way reaction toggle on a report or
// comment: no reaction -> add; same type -> remove; different type ->
// replace. A user holds at most one reaction per target.
func (s *ReportService) ToggleReaction(userID uuid.UUID, targetType string, targetID uuid.UUID, reactionType string) error {
	if !models.ValidReactionTypes[reactionType] {
		return ErrInvalidInput
	}
	if err := s.checkTarget(targetType, targetID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Reaction
		err := tx.Where("target_type = ? AND target_id = ? AND user_id = ?", targetType, targetID, userID).
			First(&existing).Error
		switch {
		case err == nil && existing.Type == reactionType:
			return tx.Delete(&existing).Error
		case err == nil:
			return tx.Model(&existing).Update("type", reactionType).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&models.Reaction{
				ID:         uuid.New(),
				TargetType: targetType,
				TargetID:   targetID,
				UserID:     userID,
				Type:       reactionType,
			}).Error
		default:
			return err
		}
	})
}

// List returns all issue reports, newest first, with comments (oldest
// first), reactions and abuse reports attached.
func (s *ReportService) List() ([]models.IssueReport, error) {
	var reports []models.IssueReport
	err := s.db.
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Comments.Reactions").
		Preload("Comments.AbuseReports").
		Preload("Reactions").
		Preload("AbuseReports").
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

// Get returns one issue report with all nested content.
func (s *ReportService) Get(id uuid.UUID) (*models.IssueReport, error) {
	var report models.IssueReport
	err := s.db.
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Comments.Reactions").
		Preload("Comments.AbuseReports").
		Preload("Reactions").
		Preload("AbuseReports").
		First(&report, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// SuggestTags asks the enrichment gateway for tag suggestions. Without a
// configured gateway it returns an empty list.
func (s *ReportService) SuggestTags(ctx context.Context, text string) []string {
	if s.enricher == nil || strings.TrimSpace(text) == "" {
		return []string{}
	}
	ctx, cancel := context.WithTimeout(ctx, s.aiTimeout)
	defer cancel()
	tags := s.enricher.SuggestTags(ctx, text)
	if tags == nil {
		return []string{}
	}
	return tags
}

func (s *ReportService) getReport(id uuid.UUID) (*models.IssueReport, error) {
	var report models.IssueReport
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (s *ReportService) checkTarget(targetType string, targetID uuid.UUID) error {
	switch targetType {
	case models.TargetReport:
		_, err := s.getReport(targetID)
		return err
	case models.TargetComment:
		var comment models.Comment
		if err := s.db.First(&comment, "id = ?", targetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return nil
	default:
		return ErrInvalidInput
	}
}

func mustJSON(v []string) datatypes.JSON {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}
