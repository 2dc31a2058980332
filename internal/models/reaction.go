package models

import (
	"time"

	"github.com/google/uuid"
)

// Reaction target types.
const (
	TargetReport  = "report"
	TargetComment = "comment"
)

// Reaction types (emoji endorsements).
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
	ReactionLaugh   = "laugh"
	ReactionSad     = "sad"
	ReactionLove    = "love"
)

var ValidReactionTypes = map[string]bool{
	ReactionLike:    true,
	ReactionDislike: true,
	ReactionLaugh:   true,
	ReactionSad:     true,
	ReactionLove:    true,
}

// Reaction is a single emoji endorsement. The unique index enforces the
// one-reaction-per-user-per-target invariant at the storage layer; the
// three-way toggle lives in the report service.
type Reaction struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TargetType string    `gorm:"size:20;not null;uniqueIndex:idx_reactions_target_user" json:"-"`
	TargetID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reactions_target_user" json:"-"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reactions_target_user" json:"user_id"`
	Type       string    `gorm:"size:20;not null" json:"type"`
	CreatedAt  time.Time `json:"created_at"`
}
