package models

import (
	"time"

	"github.com/google/uuid"
)

// AbuseReport is a complaint filed against an issue report or a comment.
// Rows are append-only: duplicates accumulate and nothing deletes them.
// Reporter identity is redacted at the DTO layer for non-admin viewers when
// the complaint was filed anonymously.
type AbuseReport struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TargetType  string    `gorm:"size:20;not null;index:idx_abuse_target" json:"target_type"`
	TargetID    uuid.UUID `gorm:"type:uuid;not null;index:idx_abuse_target" json:"target_id"`
	ReporterID  uuid.UUID `gorm:"type:uuid;not null;index" json:"reporter_id"`
	IsAnonymous bool      `gorm:"not null;default:false" json:"is_anonymous"`
	Reason      string    `gorm:"size:500;not null" json:"reason"`
	CreatedAt   time.Time `json:"created_at"`

	Reporter User `gorm:"foreignKey:ReporterID" json:"-"`
}
