package repositories

import (
	"errors"

	"xideaflow_backend/internal/models"

	"gorm.io/gorm"
)

var ErrContentNotFound = errors.New("scheduled content not found")

type ScheduledContentRepository interface {
	Create(db *gorm.DB, content *models.ScheduledContent) error
	FindByID(db *gorm.DB, userID, id string) (*models.ScheduledContent, error)
	ListByUser(db *gorm.DB, userID string, status models.ContentStatus) ([]models.ScheduledContent, error)
	Update(db *gorm.DB, content *models.ScheduledContent) error
}

type ScheduledContentRepositoryImpl struct{}

func NewScheduledContentRepository() ScheduledContentRepository {
	return &ScheduledContentRepositoryImpl{}
}

func (r *ScheduledContentRepositoryImpl) Create(db *gorm.DB, content *models.ScheduledContent) error {
	return db.Create(content).Error
}

// FindByID is user-scoped: content belongs to its author only.
func (r *ScheduledContentRepositoryImpl) FindByID(db *gorm.DB, userID, id string) (*models.ScheduledContent, error) {
	var content models.ScheduledContent
	err := db.First(&content, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return &content, nil
}

func (r *ScheduledContentRepositoryImpl) ListByUser(db *gorm.DB, userID string, status models.ContentStatus) ([]models.ScheduledContent, error) {
	var items []models.ScheduledContent
	q := db.Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("scheduled_at ASC").Find(&items).Error
	return items, err
}

func (r *ScheduledContentRepositoryImpl) Update(db *gorm.DB, content *models.ScheduledContent) error {
	return db.Save(content).Error
}
