package services

import (
	"fmt"
	"strings"

	"github.com/civicwatch-app/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ModerationService is the content-lifecycle core: the issue status state
// machine, abuse-report accumulation and the blocking cascade.
type ModerationService struct {
	db *gorm.DB
}

func NewModerationService(db *gorm.DB) *ModerationService {
	return &ModerationService{db: db}
}

// FileAbuseReport appends a complaint to a report or comment. Filing
// against an issue report escalates it to under_review from any state
// except resolved: resolved issues do not reopen.
func (s *ModerationService) FileAbuseReport(reporterID uuid.UUID, targetType string, targetID uuid.UUID, reason string, isAnonymous bool) (*models.AbuseReport, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrInvalidInput
	}
	if targetType != models.TargetReport && targetType != models.TargetComment {
		return nil, ErrInvalidInput
	}
	if _, err := getUser(s.db, reporterID); err != nil {
		return nil, err
	}

	abuse := models.AbuseReport{
		ID:          uuid.New(),
		TargetType:  targetType,
		TargetID:    targetID,
		ReporterID:  reporterID,
		IsAnonymous: isAnonymous,
		Reason:      reason,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		switch targetType {
		case models.TargetReport:
			var report models.IssueReport
			if err := tx.First(&report, "id = ?", targetID).Error; err != nil {
				return ErrNotFound
			}
			if report.Status != models.StatusResolved {
				if err := tx.Model(&report).Update("status", models.StatusUnderReview).Error; err != nil {
					return err
				}
			}
		case models.TargetComment:
			var comment models.Comment
			if err := tx.First(&comment, "id = ?", targetID).Error; err != nil {
				return ErrNotFound
			}
		}
		return tx.Create(&abuse).Error
	})
	if err != nil {
		return nil, err
	}
	return &abuse, nil
}

// Assign puts a report into in_progress under the acting resolver.
// Resolved reports cannot be reassigned.
func (s *ModerationService) Assign(actorID, reportID uuid.UUID) error {
	if err := requireRole(s.db, actorID, models.RoleResolver, models.RoleAdmin); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var report models.IssueReport
		if err := tx.First(&report, "id = ?", reportID).Error; err != nil {
			return ErrNotFound
		}
		if report.Status == models.StatusResolved {
			return ErrInvalidState
		}
		return tx.Model(&report).Updates(map[string]interface{}{
			"resolver_id": actorID,
			"status":      models.StatusInProgress,
		}).Error
	})
}

// Resolve closes a report from any state. Resolving is itself an
// assignment: the acting resolver overwrites any prior one.
func (s *ModerationService) Resolve(actorID, reportID uuid.UUID, note string) error {
	if err := requireRole(s.db, actorID, models.RoleResolver, models.RoleAdmin); err != nil {
		return err
	}
	if strings.TrimSpace(note) == "" {
		return ErrInvalidInput
	}

	result := s.db.Model(&models.IssueReport{}).
		Where("id = ?", reportID).
		Updates(map[string]interface{}{
			"status":          models.StatusResolved,
			"resolution_note": note,
			"resolver_id":     actorID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// BlockUser blocks a user and anonymizes everything they ever wrote, in a
// single transaction so no reader observes a half-applied cascade. There
// is no unblock: the original text is not retained anywhere.
func (s *ModerationService) BlockUser(actorID, targetID uuid.UUID) (string, error) {
	if err := requireRole(s.db, actorID, models.RoleAdmin); err != nil {
		return "", err
	}

	target, err := getUser(s.db, targetID)
	if err != nil {
		return "", err
	}
	if target.Role == models.RoleAdmin || target.IsBlocked {
		return "", ErrInvalidState
	}

	blockID := uuid.NewString()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", targetID).Update("is_blocked", true).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.IssueReport{}).
			Where("author_id = ?", targetID).
			Updates(map[string]interface{}{
				"is_from_blocked_user": true,
				"block_id":             blockID,
				"text":                 fmt.Sprintf("[Content from blocked user #%s]", blockID),
				"media_url":            "",
				"is_anonymous":         true,
			}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Comment{}).
			Where("author_id = ?", targetID).
			Update("text", fmt.Sprintf("[Comment from blocked user #%s]", blockID)).Error; err != nil {
			return err
		}

		// Report-level reactions only; comment-level reactions survive a block.
		return tx.Where("target_type = ? AND user_id = ?", models.TargetReport, targetID).
			Delete(&models.Reaction{}).Error
	})
	if err != nil {
		return "", err
	}
	return blockID, nil
}

// ReportedIssues returns issue reports that have at least one abuse report,
// newest first. Used by the admin moderation panel.
func (s *ModerationService) ReportedIssues() ([]models.IssueReport, error) {
	var reports []models.IssueReport
	err := s.db.
		Preload("AbuseReports").
		Where("id IN (?)", s.db.Model(&models.AbuseReport{}).
			Select("target_id").
			Where("target_type = ?", models.TargetReport)).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

// ReportedComments returns comments that have accumulated abuse reports.
func (s *ModerationService) ReportedComments() ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.
		Preload("AbuseReports").
		Where("id IN (?)", s.db.Model(&models.AbuseReport{}).
			Select("target_id").
			Where("target_type = ?", models.TargetComment)).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}
