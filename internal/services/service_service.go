package services

import (
	"xideaflow_backend/internal/models"
	"xideaflow_backend/internal/repositories"
	"xideaflow_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ServiceCatalogService lists the billable service catalog.
type ServiceCatalogService interface {
	ListActive(db *gorm.DB) ([]models.Service, error)
}

type ServiceCatalogServiceImpl struct {
	serviceRepo repositories.ServiceRepository
}

func NewServiceCatalogService(serviceRepo repositories.ServiceRepository) ServiceCatalogService {
	return &ServiceCatalogServiceImpl{serviceRepo: serviceRepo}
}

func (s *ServiceCatalogServiceImpl) ListActive(db *gorm.DB) ([]models.Service, error) {
	services, err := s.serviceRepo.ListActive(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return services, nil
}
