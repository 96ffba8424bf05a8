package repositories

import (
	"errors"
	"time"

	"xideaflow_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPlanNotFound         = errors.New("subscription plan not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

type SubscriptionRepository interface {
	GetActivePlans(db *gorm.DB) ([]models.SubscriptionPlan, error)
	FindPlanByID(db *gorm.DB, id string) (*models.SubscriptionPlan, error)
	FindPlanByName(db *gorm.DB, name string) (*models.SubscriptionPlan, error)
	CreatePlan(db *gorm.DB, plan *models.SubscriptionPlan) error

	FindActiveByUserID(db *gorm.DB, userID string, now time.Time) (*models.UserSubscription, error)
	FindByPaddleSubscriptionID(db *gorm.DB, paddleSubID string) (*models.UserSubscription, error)
	DeactivateAllForUser(db *gorm.DB, userID string, disableAutoRenew bool) error
	Create(db *gorm.DB, sub *models.UserSubscription) error
	UpdateByPaddleSubscriptionID(db *gorm.DB, paddleSubID string, fields map[string]interface{}) error
}

type SubscriptionRepositoryImpl struct{}

func NewSubscriptionRepository() SubscriptionRepository {
	return &SubscriptionRepositoryImpl{}
}

func (r *SubscriptionRepositoryImpl) GetActivePlans(db *gorm.DB) ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	err := db.Preload("PlanServices.Service").
		Where("is_active = ?", true).
		Order("price ASC").
		Find(&plans).Error
	return plans, err
}

func (r *SubscriptionRepositoryImpl) FindPlanByID(db *gorm.DB, id string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := db.Preload("PlanServices.Service").First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *SubscriptionRepositoryImpl) FindPlanByName(db *gorm.DB, name string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := db.Preload("PlanServices.Service").First(&plan, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// CreatePlan persists the plan together with its service bindings.
func (r *SubscriptionRepositoryImpl) CreatePlan(db *gorm.DB, plan *models.SubscriptionPlan) error {
	return db.Create(plan).Error
}

// FindActiveByUserID resolves the entitlement source of truth: the
// newest active subscription that has not expired.
func (r *SubscriptionRepositoryImpl) FindActiveByUserID(db *gorm.DB, userID string, now time.Time) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	err := db.Preload("Plan.PlanServices.Service").
		Where("user_id = ? AND is_active = ? AND (end_date IS NULL OR end_date > ?)", userID, true, now).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) FindByPaddleSubscriptionID(db *gorm.DB, paddleSubID string) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	err := db.Preload("Plan").First(&sub, "paddle_subscription_id = ?", paddleSubID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) DeactivateAllForUser(db *gorm.DB, userID string, disableAutoRenew bool) error {
	fields := map[string]interface{}{"is_active": false}
	if disableAutoRenew {
		fields["auto_renew"] = false
	}
	return db.Model(&models.UserSubscription{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Updates(fields).Error
}

func (r *SubscriptionRepositoryImpl) Create(db *gorm.DB, sub *models.UserSubscription) error {
	return db.Create(sub).Error
}

func (r *SubscriptionRepositoryImpl) UpdateByPaddleSubscriptionID(db *gorm.DB, paddleSubID string, fields map[string]interface{}) error {
	res := db.Model(&models.UserSubscription{}).
		Where("paddle_subscription_id = ?", paddleSubID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}
