package repositories

import (
	"errors"

	"xideaflow_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrServiceNotFound = errors.New("service not found")

type ServiceRepository interface {
	FindByID(db *gorm.DB, id string) (*models.Service, error)
	FindByName(db *gorm.DB, name string) (*models.Service, error)
	ListActive(db *gorm.DB) ([]models.Service, error)
	Upsert(db *gorm.DB, service *models.Service) error
}

type ServiceRepositoryImpl struct{}

func NewServiceRepository() ServiceRepository {
	return &ServiceRepositoryImpl{}
}

func (r *ServiceRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Service, error) {
	var svc models.Service
	err := db.First(&svc, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &svc, nil
}

func (r *ServiceRepositoryImpl) FindByName(db *gorm.DB, name string) (*models.Service, error) {
	var svc models.Service
	err := db.First(&svc, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &svc, nil
}

func (r *ServiceRepositoryImpl) ListActive(db *gorm.DB) ([]models.Service, error) {
	var services []models.Service
	err := db.Where("is_active = ?", true).Order("name ASC").Find(&services).Error
	return services, err
}

// Upsert keeps the seeder idempotent: on name conflict the catalog
// entry is refreshed instead of duplicated.
func (r *ServiceRepositoryImpl) Upsert(db *gorm.DB, service *models.Service) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"display_name", "description", "credit_cost", "is_active",
		}),
	}).Create(service).Error
}
