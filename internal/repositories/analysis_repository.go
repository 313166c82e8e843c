package repositories

import (
	"errors"

	"careercraft_backend/internal/models"

	"gorm.io/gorm"
)

var ErrReportNotFound = errors.New("communication report not found")

type AnalysisRepository interface {
	CreateReportTx(tx *gorm.DB, report *models.CommunicationReport) error
	FindReportByID(id, userID string) (*models.CommunicationReport, error)
	FindReportsByUser(userID string, limit, offset int) ([]models.CommunicationReport, int64, error)
}

type AnalysisRepositoryImpl struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &AnalysisRepositoryImpl{db: db}
}

func (r *AnalysisRepositoryImpl) CreateReportTx(tx *gorm.DB, report *models.CommunicationReport) error {
	return tx.Create(report).Error
}

func (r *AnalysisRepositoryImpl) FindReportByID(id, userID string) (*models.CommunicationReport, error) {
	var report models.CommunicationReport
	err := r.db.First(&report, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *AnalysisRepositoryImpl) FindReportsByUser(userID string, limit, offset int) ([]models.CommunicationReport, int64, error) {
	var reports []models.CommunicationReport
	var total int64

	query := r.db.Model(&models.CommunicationReport{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error
	return reports, total, err
}
