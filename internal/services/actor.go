package services

import (
	"errors"

	"github.com/civicwatch-app/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func getUser(db *gorm.DB, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// requireRole loads the actor and checks it holds one of the given roles.
func requireRole(db *gorm.DB, actorID uuid.UUID, roles ...string) error {
	actor, err := getUser(db, actorID)
	if err != nil {
		return err
	}
	for _, r := range roles {
		if actor.Role == r {
			return nil
		}
	}
	return ErrUnauthorized
}
