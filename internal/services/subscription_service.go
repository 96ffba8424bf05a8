package services

import (
	"time"

	"xideaflow_backend/internal/models"
	"xideaflow_backend/internal/repositories"
	"xideaflow_backend/internal/services/dto"
	"xideaflow_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// AccessCheck is the entitlement verdict for one user/service pair.
// Limit -1 means unlimited; limit 0 grants access that is always
// blocked by the meter.
type AccessCheck struct {
	HasAccess   bool               `json:"has_access"`
	IsUnlimited bool               `json:"is_unlimited"`
	Limit       int                `json:"limit"`
	UsagePeriod models.UsagePeriod `json:"usage_period,omitempty"`
}

// SubscriptionService is the entitlement engine plus plan catalog.
type SubscriptionService interface {
	GetPlans(db *gorm.DB) ([]models.SubscriptionPlan, error)
	FindPlanByID(db *gorm.DB, id string) (*models.SubscriptionPlan, error)
	FindPlanByName(db *gorm.DB, name string) (*models.SubscriptionPlan, error)
	CreatePlan(db *gorm.DB, req *dto.CreatePlanRequest) (*models.SubscriptionPlan, error)

	GetUserActiveSubscription(db *gorm.DB, userID string) (*models.UserSubscription, error)
	CheckServiceAccess(db *gorm.DB, userID, serviceID string) (*AccessCheck, error)
	CreateUserSubscription(db *gorm.DB, userID, planID string, paddleSubID, paddleCustID *string) (*models.UserSubscription, error)
	CancelSubscription(db *gorm.DB, userID string) error
}

type SubscriptionServiceImpl struct {
	subscriptionRepo repositories.SubscriptionRepository
	creditRepo       repositories.CreditRepository
	creditService    CreditService
	clock            Clock
}

func NewSubscriptionService(
	subscriptionRepo repositories.SubscriptionRepository,
	creditRepo repositories.CreditRepository,
	creditService CreditService,
	clock Clock,
) SubscriptionService {
	return &SubscriptionServiceImpl{
		subscriptionRepo: subscriptionRepo,
		creditRepo:       creditRepo,
		creditService:    creditService,
		clock:            clock,
	}
}

func (s *SubscriptionServiceImpl) GetPlans(db *gorm.DB) ([]models.SubscriptionPlan, error) {
	plans, err := s.subscriptionRepo.GetActivePlans(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return plans, nil
}

func (s *SubscriptionServiceImpl) FindPlanByID(db *gorm.DB, id string) (*models.SubscriptionPlan, error) {
	plan, err := s.subscriptionRepo.FindPlanByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPlanNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return plan, nil
}

func (s *SubscriptionServiceImpl) FindPlanByName(db *gorm.DB, name string) (*models.SubscriptionPlan, error) {
	plan, err := s.subscriptionRepo.FindPlanByName(db, name)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPlanNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return plan, nil
}

func (s *SubscriptionServiceImpl) CreatePlan(db *gorm.DB, req *dto.CreatePlanRequest) (*models.SubscriptionPlan, error) {
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	plan := &models.SubscriptionPlan{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Currency:        currency,
		CreditsIncluded: req.CreditsIncluded,
		DurationDays:    req.DurationDays,
		IsRecurring:     req.IsRecurring,
		IsActive:        true,
		PaddlePlanID:    req.PaddlePlanID,
	}
	for _, binding := range req.Services {
		plan.PlanServices = append(plan.PlanServices, models.PlanService{
			ServiceID:   binding.ServiceID,
			UsageLimit:  binding.UsageLimit,
			UsagePeriod: binding.UsagePeriod,
		})
	}

	if err := s.subscriptionRepo.CreatePlan(db, plan); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.FindPlanByID(db, plan.ID)
}

func (s *SubscriptionServiceImpl) GetUserActiveSubscription(db *gorm.DB, userID string) (*models.UserSubscription, error) {
	sub, err := s.subscriptionRepo.FindActiveByUserID(db, userID, s.clock.Now())
	if err != nil {
		if apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, apperrors.ErrNoActiveSubscription
		}
		return nil, apperrors.InternalError(err)
	}
	return sub, nil
}

// CheckServiceAccess answers whether the user's active plan includes
// the service. No active subscription or a plan without the service
// both mean no access.
func (s *SubscriptionServiceImpl) CheckServiceAccess(db *gorm.DB, userID, serviceID string) (*AccessCheck, error) {
	sub, err := s.subscriptionRepo.FindActiveByUserID(db, userID, s.clock.Now())
	if err != nil {
		if apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
			return &AccessCheck{}, nil
		}
		return nil, apperrors.InternalError(err)
	}
	if sub.Plan == nil {
		return &AccessCheck{}, nil
	}

	for _, ps := range sub.Plan.PlanServices {
		if ps.ServiceID == serviceID {
			return &AccessCheck{
				HasAccess:   true,
				IsUnlimited: ps.UsageLimit == -1,
				Limit:       ps.UsageLimit,
				UsagePeriod: ps.UsagePeriod,
			}, nil
		}
	}

	return &AccessCheck{}, nil
}

// CreateUserSubscription activates a plan for the user. Deactivation of
// previous subscriptions, activation, plan-type switch and credit grant
// all commit or roll back together; a partial unique index on
// (user_id) WHERE is_active backs the one-active-row invariant.
func (s *SubscriptionServiceImpl) CreateUserSubscription(db *gorm.DB, userID, planID string, paddleSubID, paddleCustID *string) (*models.UserSubscription, error) {
	plan, err := s.FindPlanByID(db, planID)
	if err != nil {
		return nil, err
	}

	// Account must exist before the grant below.
	if _, err := s.creditService.GetUserCredits(db, userID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	var endDate *time.Time
	if !plan.IsRecurring {
		end := now.AddDate(0, 0, plan.DurationDays)
		endDate = &end
	}

	sub := &models.UserSubscription{
		UserID:               userID,
		PlanID:               plan.ID,
		StartDate:            now,
		EndDate:              endDate,
		IsActive:             true,
		AutoRenew:            true,
		PaddleSubscriptionID: paddleSubID,
		PaddleCustomerID:     paddleCustID,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.subscriptionRepo.DeactivateAllForUser(tx, userID, false); err != nil {
			return err
		}
		if err := s.subscriptionRepo.Create(tx, sub); err != nil {
			return err
		}
		if err := s.creditRepo.SetPlanType(tx, userID, models.PlanTypeSubscription); err != nil {
			return err
		}
		if plan.CreditsIncluded > 0 {
			return s.creditRepo.AddCredits(tx, userID, plan.CreditsIncluded, &models.CreditTransaction{
				UserID:      userID,
				Type:        models.TransactionTypeSubscriptionGrant,
				Amount:      plan.CreditsIncluded,
				Status:      models.TransactionStatusCompleted,
				Description: "Credits included with " + plan.Name + " plan",
			})
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	sub.Plan = plan
	return sub, nil
}

// CancelSubscription deactivates the user's subscriptions and drops the
// ledger back to the FREE plan type. Remaining credits stay spendable.
func (s *SubscriptionServiceImpl) CancelSubscription(db *gorm.DB, userID string) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.subscriptionRepo.DeactivateAllForUser(tx, userID, true); err != nil {
			return err
		}
		return s.creditRepo.SetPlanType(tx, userID, models.PlanTypeFree)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
