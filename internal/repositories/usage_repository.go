package repositories

import (
	"errors"

	"xideaflow_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UsageRepository interface {
	Increment(db *gorm.DB, userID, serviceID, period string, usagePeriod models.UsagePeriod) error
	GetCount(db *gorm.DB, userID, serviceID, period string, usagePeriod models.UsagePeriod) (int, error)
}

type UsageRepositoryImpl struct{}

func NewUsageRepository() UsageRepository {
	return &UsageRepositoryImpl{}
}

// Increment bumps the counter for the bucket, creating the row on first
// use. The ON CONFLICT increment keeps concurrent requests from losing
// counts.
func (r *UsageRepositoryImpl) Increment(db *gorm.DB, userID, serviceID, period string, usagePeriod models.UsagePeriod) error {
	usage := models.UserServiceUsage{
		UserID:      userID,
		ServiceID:   serviceID,
		Period:      period,
		UsagePeriod: usagePeriod,
		UsageCount:  1,
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "service_id"},
			{Name: "period"},
			{Name: "usage_period"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"usage_count": gorm.Expr("user_service_usages.usage_count + 1"),
		}),
	}).Create(&usage).Error
}

func (r *UsageRepositoryImpl) GetCount(db *gorm.DB, userID, serviceID, period string, usagePeriod models.UsagePeriod) (int, error) {
	var usage models.UserServiceUsage
	err := db.Where(
		"user_id = ? AND service_id = ? AND period = ? AND usage_period = ?",
		userID, serviceID, period, usagePeriod,
	).First(&usage).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return usage.UsageCount, nil
}
