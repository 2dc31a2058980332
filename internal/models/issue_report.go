package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// IssueReport status values. Resolved is terminal: no operation transitions
// a report out of it.
const (
	StatusActive      = "active"
	StatusInProgress  = "in_progress"
	StatusUnderReview = "under_review"
	StatusResolved    = "resolved"
)

// IssueReport is a citizen-submitted record of a community problem, together
// with everything that accumulated on it: comments, reactions and abuse
// reports. Abuse reports are an audit trail and are never removed.
type IssueReport struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"author_id"`
	IsAnonymous       bool           `gorm:"not null;default:false" json:"is_anonymous"`
	Text              string         `gorm:"type:text" json:"text,omitempty"`
	MediaURL          string         `gorm:"size:500" json:"media_url,omitempty"`
	Tags              datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"tags"`
	Mentions          datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"mentions"`
	Status            string         `gorm:"size:20;not null;default:'active';index" json:"status"`
	ResolverID        *uuid.UUID     `gorm:"type:uuid" json:"resolver_id,omitempty"`
	ResolutionNote    string         `gorm:"type:text" json:"resolution_note,omitempty"`
	IsFromBlockedUser bool           `gorm:"not null;default:false" json:"is_from_blocked_user"`
	BlockID           string         `gorm:"size:36" json:"block_id,omitempty"`
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`

	Author       User          `gorm:"foreignKey:AuthorID" json:"-"`
	Comments     []Comment     `gorm:"foreignKey:ReportID" json:"comments"`
	Reactions    []Reaction    `gorm:"polymorphic:Target;polymorphicValue:report" json:"reactions"`
	AbuseReports []AbuseReport `gorm:"polymorphic:Target;polymorphicValue:report" json:"abuse_reports"`
}

// Comment belongs to exactly one issue report and has no independent
// lifecycle. FIFO authorship order is preserved (created_at ascending).
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ReportID  uuid.UUID `gorm:"type:uuid;not null;index" json:"report_id"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`

	Author       User          `gorm:"foreignKey:AuthorID" json:"-"`
	Reactions    []Reaction    `gorm:"polymorphic:Target;polymorphicValue:comment" json:"reactions"`
	AbuseReports []AbuseReport `gorm:"polymorphic:Target;polymorphicValue:comment" json:"abuse_reports"`
}
