package database

import (
	"fmt"

	"careercraft_backend/internal/logger"
	"careercraft_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate creates the uuid extension and brings the schema up to date.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid-ossp extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.CreditTransaction{},
		&models.GenerationReceipt{},
		&models.Resume{},
		&models.ResumeVersion{},
		&models.TailoredResume{},
		&models.Document{},
		&models.InterviewSession{},
		&models.CommunicationReport{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	logger.Info("Database migration completed")
	return nil
}
