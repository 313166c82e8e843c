package repositories

import (
	"errors"

	"careercraft_backend/internal/models"

	"gorm.io/gorm"
)

var ErrInterviewSessionNotFound = errors.New("interview session not found")

type InterviewRepository interface {
	CreateTx(tx *gorm.DB, session *models.InterviewSession) error
	FindByID(id, userID string) (*models.InterviewSession, error)
	FindByUser(userID string, limit, offset int) ([]models.InterviewSession, int64, error)
	Delete(id, userID string) error
}

type InterviewRepositoryImpl struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &InterviewRepositoryImpl{db: db}
}

func (r *InterviewRepositoryImpl) CreateTx(tx *gorm.DB, session *models.InterviewSession) error {
	return tx.Create(session).Error
}

func (r *InterviewRepositoryImpl) FindByID(id, userID string) (*models.InterviewSession, error) {
	var session models.InterviewSession
	err := r.db.First(&session, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *InterviewRepositoryImpl) FindByUser(userID string, limit, offset int) ([]models.InterviewSession, int64, error) {
	var sessions []models.InterviewSession
	var total int64

	query := r.db.Model(&models.InterviewSession{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&sessions).Error
	return sessions, total, err
}

func (r *InterviewRepositoryImpl) Delete(id, userID string) error {
	result := r.db.Delete(&models.InterviewSession{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInterviewSessionNotFound
	}
	return nil
}
