package services

import (
	"errors"
	"strings"

	"github.com/civicwatch-app/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TagService manages the flat tag registry. Mutations are admin-only.
type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

// NormalizeTag converts free-form input to the canonical
// "#lowercase-hyphenated" form.
func NormalizeTag(raw string) string {
	tag := strings.TrimSpace(strings.TrimPrefix(raw, "#"))
	tag = strings.ToLower(tag)
	tag = strings.Join(strings.Fields(tag), "-")
	if tag == "" {
		return ""
	}
	return "#" + tag
}

// List returns all tag names sorted lexicographically.
func (s *TagService) List() ([]string, error) {
	var tags []models.Tag
	if err := s.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names, nil
}

// Add inserts a normalized tag. Adding an existing tag is a no-op.
func (s *TagService) Add(actorID uuid.UUID, raw string) error {
	if err := requireRole(s.db, actorID, models.RoleAdmin); err != nil {
		return err
	}
	name := NormalizeTag(raw)
	if name == "" {
		return ErrInvalidInput
	}

	var existing models.Tag
	err := s.db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.db.Create(&models.Tag{ID: uuid.New(), Name: name}).Error
}

// Remove deletes a tag from the registry. Reports keep any copies of the
// name they already carry.
func (s *TagService) Remove(actorID uuid.UUID, raw string) error {
	if err := requireRole(s.db, actorID, models.RoleAdmin); err != nil {
		return err
	}
	name := NormalizeTag(raw)
	result := s.db.Where("name = ?", name).Delete(&models.Tag{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
