package services

import (
	"errors"

	"github.com/civicwatch-app/backend/internal/dto"
	"github.com/civicwatch-app/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService is the identity store: profiles, roles and the follow graph.
// Blocking lives in the moderation service because of its content cascade.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// List returns every user together with both sides of the follow graph.
// Secrets (password hash, API key) never leave the model's json tags.
func (s *UserService) List() ([]dto.UserResponse, error) {
	var users []models.User
	if err := s.db.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	var follows []models.Follow
	if err := s.db.Find(&follows).Error; err != nil {
		return nil, err
	}

	followers := make(map[uuid.UUID][]uuid.UUID)
	following := make(map[uuid.UUID][]uuid.UUID)
	for _, f := range follows {
		followers[f.FolloweeID] = append(followers[f.FolloweeID], f.FollowerID)
		following[f.FollowerID] = append(following[f.FollowerID], f.FolloweeID)
	}

	resp := make([]dto.UserResponse, len(users))
	for i, u := range users {
		resp[i] = dto.NewUserResponse(&u, followers[u.ID], following[u.ID])
	}
	return resp, nil
}

// Get returns a single user with follower/following id lists.
func (s *UserService) Get(id uuid.UUID) (*dto.UserResponse, error) {
	user, err := getUser(s.db, id)
	if err != nil {
		return nil, err
	}

	var followers, following []uuid.UUID
	if err := s.db.Model(&models.Follow{}).Where("followee_id = ?", id).Pluck("follower_id", &followers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Follow{}).Where("follower_id = ?", id).Pluck("followee_id", &following).Error; err != nil {
		return nil, err
	}

	resp := dto.NewUserResponse(user, followers, following)
	return &resp, nil
}

// SetRole changes a user's role. Admin only.
func (s *UserService) SetRole(actorID, targetID uuid.UUID, newRole string) error {
	if err := requireRole(s.db, actorID, models.RoleAdmin); err != nil {
		return err
	}
	if !models.ValidRoles[newRole] {
		return ErrInvalidInput
	}

	result := s.db.Model(&models.User{}).Where("id = ?", targetID).Update("role", newRole)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleFollow follows the target if not already followed, otherwise
// unfollows. Both directions of the relationship derive from one row, so
// the update is atomic for any concurrent reader.
func (s *UserService) ToggleFollow(actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return ErrInvalidState
	}
	if _, err := getUser(s.db, targetID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Follow
		err := tx.Where("follower_id = ? AND followee_id = ?", actorID, targetID).First(&existing).Error
		if err == nil {
			return tx.Delete(&existing).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&models.Follow{
			ID:         uuid.New(),
			FollowerID: actorID,
			FolloweeID: targetID,
		}).Error
	})
}

// UpdateProfile applies the caller's own profile edits.
func (s *UserService) UpdateProfile(userID uuid.UUID, req *dto.UpdateProfileRequest) error {
	updates := map[string]interface{}{}
	if req.Name != nil {
		if *req.Name == "" {
			return ErrInvalidInput
		}
		updates["name"] = *req.Name
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.Age != nil {
		updates["age"] = *req.Age
	}
	if req.Theme != nil {
		updates["theme"] = *req.Theme
	}
	if len(updates) == 0 {
		return nil
	}

	result := s.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RegenerateAPIKey replaces the user's API key unconditionally. The old key
// is dead as soon as the row is written: key auth resolves the key against
// this column on every request.
func (s *UserService) RegenerateAPIKey(userID uuid.UUID) (string, error) {
	if _, err := getUser(s.db, userID); err != nil {
		return "", err
	}
	newKey := uuid.NewString()
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Update("api_key", newKey).Error; err != nil {
		return "", err
	}
	return newKey, nil
}

// FindByAPIKey resolves an API key to a user. Blocked users' keys are
// rejected like any other credential.
func (s *UserService) FindByAPIKey(key string) (*models.User, error) {
	if key == "" {
		return nil, ErrInvalidCredentials
	}
	var user models.User
	if err := s.db.Where("api_key = ?", key).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.IsBlocked {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}
