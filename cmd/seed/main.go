package main

import (
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/civicwatch-app/backend/internal/config"
	"github.com/civicwatch-app/backend/internal/database"
	"github.com/civicwatch-app/backend/internal/logging"
	"github.com/civicwatch-app/backend/internal/models"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var seedTags = []string{
	"#pothole", "#safety", "#parking", "#traffic", "#infrastructure",
	"#community", "#illegal-dumping", "#street-light", "#hazard",
}

func main() {
	logging.Setup()

	_ = godotenv.Load()
	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	if err := seed(database.DB); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	slog.Info("database seeded")
}

func seed(db *gorm.DB) error {
	seedUsers := []struct {
		name     string
		email    string
		password string
		role     string
	}{
		{"Alice Johnson", "alice@example.com", "password", models.RoleUser},
		{"Bob Williams", "bob@example.com", "password", models.RoleUser},
		{"Charlie Brown", "charlie@example.com", "password", models.RoleUser},
		{"Diana Prince", "diana@example.com", "password", models.RoleResolver},
		{"Ethan Hunt", "admin@example.com", "admin-password", models.RoleAdmin},
	}

	users := make([]models.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		var existing models.User
		if err := db.Where("email = ?", su.email).First(&existing).Error; err == nil {
			users = append(users, existing)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{
			ID:       uuid.New(),
			Name:     su.name,
			Email:    su.email,
			Password: string(hash),
			Role:     su.role,
			APIKey:   uuid.NewString(),
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		users = append(users, user)
	}

	for _, name := range seedTags {
		var existing models.Tag
		if err := db.Where("name = ?", name).First(&existing).Error; err != nil {
			if err := db.Create(&models.Tag{ID: uuid.New(), Name: name}).Error; err != nil {
				return err
			}
		}
	}

	var reportCount int64
	db.Model(&models.IssueReport{}).Count(&reportCount)
	if reportCount > 0 {
		return nil
	}

	alice, bob, charlie := users[0], users[1], users[2]

	pothole := models.IssueReport{
		ID:        uuid.New(),
		AuthorID:  bob.ID,
		Text:      "There is a massive pothole on Elm Street right before the elementary school. It's a serious hazard for cars and cyclists.",
		MediaURL:  "https://picsum.photos/seed/pothole/800/600",
		Tags:      jsonList("#pothole", "#safety", "#infrastructure"),
		Mentions:  jsonList(),
		Status:    models.StatusActive,
		CreatedAt: time.Now().Add(-3 * time.Hour),
	}
	if err := db.Create(&pothole).Error; err != nil {
		return err
	}
	if err := db.Create(&models.Comment{
		ID:        uuid.New(),
		ReportID:  pothole.ID,
		AuthorID:  charlie.ID,
		Text:      "I hit that yesterday! The city needs to fix this ASAP.",
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}).Error; err != nil {
		return err
	}
	if err := db.Create(&models.Reaction{
		ID:         uuid.New(),
		TargetType: models.TargetReport,
		TargetID:   pothole.ID,
		UserID:     alice.ID,
		Type:       models.ReactionLike,
	}).Error; err != nil {
		return err
	}

	hydrant := models.IssueReport{
		ID:          uuid.New(),
		AuthorID:    charlie.ID,
		IsAnonymous: true,
		Text:        "A blue sedan has been parked in front of a fire hydrant on Main Street for three days now.",
		Tags:        jsonList("#parking", "#safety", "#hazard"),
		Mentions:    jsonList(),
		Status:      models.StatusUnderReview,
		CreatedAt:   time.Now().Add(-6 * time.Hour),
	}
	if err := db.Create(&hydrant).Error; err != nil {
		return err
	}
	return db.Create(&models.AbuseReport{
		ID:         uuid.New(),
		TargetType: models.TargetReport,
		TargetID:   hydrant.ID,
		ReporterID: bob.ID,
		Reason:     "This issue is critical and needs immediate attention.",
	}).Error
}

func jsonList(items ...string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return datatypes.JSON(b)
}
