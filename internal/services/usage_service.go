package services

import (
	"fmt"

	"xideaflow_backend/internal/models"
	"xideaflow_backend/internal/repositories"
	"xideaflow_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// UsageService meters service consumption in rolling period buckets.
// A bucket is identified by its key string, so a new period starts
// implicitly when the key rolls over.
type UsageService interface {
	PeriodKey(period models.UsagePeriod) string
	GetCurrentUsage(db *gorm.DB, userID, serviceID string, period models.UsagePeriod) (int, error)
	IncrementUsage(db *gorm.DB, userID, serviceID string, period models.UsagePeriod) error
}

type UsageServiceImpl struct {
	usageRepo repositories.UsageRepository
	clock     Clock
}

func NewUsageService(usageRepo repositories.UsageRepository, clock Clock) UsageService {
	return &UsageServiceImpl{
		usageRepo: usageRepo,
		clock:     clock,
	}
}

// PeriodKey derives the bucket key for the current instant (UTC):
// DAILY "2006-01-02", WEEKLY "2006-W27" (ISO week), MONTHLY "2006-01".
func (s *UsageServiceImpl) PeriodKey(period models.UsagePeriod) string {
	now := s.clock.Now().UTC()

	switch period {
	case models.UsagePeriodDaily:
		return now.Format("2006-01-02")
	case models.UsagePeriodWeekly:
		year, week := now.ISOWeek()
		return fmt.Sprintf("%d-W%d", year, week)
	case models.UsagePeriodMonthly:
		return now.Format("2006-01")
	default:
		return now.Format("2006-01-02")
	}
}

func (s *UsageServiceImpl) GetCurrentUsage(db *gorm.DB, userID, serviceID string, period models.UsagePeriod) (int, error) {
	count, err := s.usageRepo.GetCount(db, userID, serviceID, s.PeriodKey(period), period)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *UsageServiceImpl) IncrementUsage(db *gorm.DB, userID, serviceID string, period models.UsagePeriod) error {
	if err := s.usageRepo.Increment(db, userID, serviceID, s.PeriodKey(period), period); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
