package models

import (
	"time"

	"github.com/google/uuid"
)

// Follow is one edge of the follow graph. Both the follower's "following"
// list and the followee's "followers" list derive from the same row, so the
// two sides can never disagree.
type Follow struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FollowerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair;index" json:"follower_id"`
	FolloweeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair;index" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
	Follower   User      `gorm:"foreignKey:FollowerID" json:"-"`
	Followee   User      `gorm:"foreignKey:FolloweeID" json:"-"`
}

func (Follow) TableName() string {
	return "follows"
}
