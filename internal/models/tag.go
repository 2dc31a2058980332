package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a registry entry referenced by issue reports for filtering.
// Names are stored normalized: "#lowercase-hyphenated".
type Tag struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
