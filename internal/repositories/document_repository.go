package repositories

import (
	"errors"

	"careercraft_backend/internal/models"

	"gorm.io/gorm"
)

var ErrDocumentNotFound = errors.New("document not found")

type DocumentRepository interface {
	CreateTx(tx *gorm.DB, doc *models.Document) error
	FindByID(id, userID string) (*models.Document, error)
	FindByUser(userID string, kind models.DocumentKind, limit, offset int) ([]models.Document, int64, error)
	Delete(id, userID string) error
}

type DocumentRepositoryImpl struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &DocumentRepositoryImpl{db: db}
}

func (r *DocumentRepositoryImpl) CreateTx(tx *gorm.DB, doc *models.Document) error {
	return tx.Create(doc).Error
}

func (r *DocumentRepositoryImpl) FindByID(id, userID string) (*models.Document, error) {
	var doc models.Document
	err := r.db.First(&doc, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepositoryImpl) FindByUser(userID string, kind models.DocumentKind, limit, offset int) ([]models.Document, int64, error) {
	var docs []models.Document
	var total int64

	query := r.db.Model(&models.Document{}).Where("user_id = ?", userID)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&docs).Error
	return docs, total, err
}

func (r *DocumentRepositoryImpl) Delete(id, userID string) error {
	result := r.db.Delete(&models.Document{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}
