package repositories

import (
	"errors"

	"careercraft_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrResumeNotFound         = errors.New("resume not found")
	ErrTailoredResumeNotFound = errors.New("tailored resume not found")
)

// maxResumeVersions bounds version history per resume; the oldest version
// is evicted when the cap is reached.
const maxResumeVersions = 5

type ResumeRepository interface {
	CreateTx(tx *gorm.DB, resume *models.Resume) error
	FindByID(id, userID string) (*models.Resume, error)
	FindByUser(userID string, limit, offset int) ([]models.Resume, int64, error)
	Update(resume *models.Resume) error
	Delete(id, userID string) error

	// SnapshotVersionTx appends a version row inside tx, evicting the
	// oldest when the resume already has maxResumeVersions of them.
	SnapshotVersionTx(tx *gorm.DB, resumeID string, content []byte, label string) error
	FindVersions(resumeID, userID string) ([]models.ResumeVersion, error)

	CreateTailoredTx(tx *gorm.DB, tailored *models.TailoredResume) error
	FindTailoredByID(id, userID string) (*models.TailoredResume, error)
}

type ResumeRepositoryImpl struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &ResumeRepositoryImpl{db: db}
}

func (r *ResumeRepositoryImpl) CreateTx(tx *gorm.DB, resume *models.Resume) error {
	return tx.Create(resume).Error
}

func (r *ResumeRepositoryImpl) FindByID(id, userID string) (*models.Resume, error) {
	var resume models.Resume
	err := r.db.First(&resume, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, err
	}
	return &resume, nil
}

func (r *ResumeRepositoryImpl) FindByUser(userID string, limit, offset int) ([]models.Resume, int64, error) {
	var resumes []models.Resume
	var total int64

	query := r.db.Model(&models.Resume{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("updated_at DESC").Limit(limit).Offset(offset).Find(&resumes).Error
	return resumes, total, err
}

func (r *ResumeRepositoryImpl) Update(resume *models.Resume) error {
	result := r.db.Model(&models.Resume{}).
		Where("id = ? AND user_id = ?", resume.ID, resume.UserID).
		Updates(map[string]interface{}{
			"title":   resume.Title,
			"content": resume.Content,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrResumeNotFound
	}
	return nil
}

func (r *ResumeRepositoryImpl) Delete(id, userID string) error {
	result := r.db.Delete(&models.Resume{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrResumeNotFound
	}
	return nil
}

func (r *ResumeRepositoryImpl) SnapshotVersionTx(tx *gorm.DB, resumeID string, content []byte, label string) error {
	var versions []models.ResumeVersion
	if err := tx.Where("resume_id = ?", resumeID).Order("version ASC").Find(&versions).Error; err != nil {
		return err
	}

	next := 1
	if len(versions) > 0 {
		next = versions[len(versions)-1].Version + 1
	}

	if len(versions) >= maxResumeVersions {
		evict := len(versions) - maxResumeVersions + 1
		for _, old := range versions[:evict] {
			if err := tx.Delete(&models.ResumeVersion{}, "id = ?", old.ID).Error; err != nil {
				return err
			}
		}
	}

	version := &models.ResumeVersion{
		ResumeID: resumeID,
		Version:  next,
		Content:  content,
		Label:    label,
	}
	return tx.Create(version).Error
}

func (r *ResumeRepositoryImpl) FindVersions(resumeID, userID string) ([]models.ResumeVersion, error) {
	// Ownership check first so versions never leak across accounts.
	if _, err := r.FindByID(resumeID, userID); err != nil {
		return nil, err
	}

	var versions []models.ResumeVersion
	err := r.db.Where("resume_id = ?", resumeID).Order("version DESC").Find(&versions).Error
	return versions, err
}

func (r *ResumeRepositoryImpl) CreateTailoredTx(tx *gorm.DB, tailored *models.TailoredResume) error {
	return tx.Create(tailored).Error
}

func (r *ResumeRepositoryImpl) FindTailoredByID(id, userID string) (*models.TailoredResume, error) {
	var tailored models.TailoredResume
	err := r.db.First(&tailored, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTailoredResumeNotFound
		}
		return nil, err
	}
	return &tailored, nil
}
