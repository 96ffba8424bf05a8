package services

import (
	"context"

	"xideaflow_backend/internal/logger"
	"xideaflow_backend/internal/models"
	"xideaflow_backend/internal/repositories"
	"xideaflow_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// GenerateFunc produces the content payload once all gates have passed.
type GenerateFunc func() (interface{}, error)

// ExecutionMeta reports what a billable run consumed.
type ExecutionMeta struct {
	ServiceName string
	ServiceID   string
	CreditsUsed int
}

// BillableActionService runs the gate sequence shared by every paid
// endpoint: resolve service, plan access, usage limit, credit balance,
// generate, deduct, meter. Free services (cost 0) skip the credit
// gates but are still metered.
type BillableActionService interface {
	Execute(ctx context.Context, db *gorm.DB, userID, serviceName string, action models.CreditActionType, generate GenerateFunc) (interface{}, *ExecutionMeta, error)
}

type BillableActionServiceImpl struct {
	serviceRepo         repositories.ServiceRepository
	subscriptionService SubscriptionService
	creditService       CreditService
	usageService        UsageService
}

func NewBillableActionService(
	serviceRepo repositories.ServiceRepository,
	subscriptionService SubscriptionService,
	creditService CreditService,
	usageService UsageService,
) BillableActionService {
	return &BillableActionServiceImpl{
		serviceRepo:         serviceRepo,
		subscriptionService: subscriptionService,
		creditService:       creditService,
		usageService:        usageService,
	}
}

func (s *BillableActionServiceImpl) Execute(ctx context.Context, db *gorm.DB, userID, serviceName string, action models.CreditActionType, generate GenerateFunc) (interface{}, *ExecutionMeta, error) {
	svc, err := s.serviceRepo.FindByName(db, serviceName)
	if err != nil {
		if apperrors.Is(err, repositories.ErrServiceNotFound) {
			return nil, nil, apperrors.ErrNotFound(err)
		}
		return nil, nil, apperrors.InternalError(err)
	}
	if !svc.IsActive {
		return nil, nil, apperrors.ErrNotFound(repositories.ErrServiceNotFound)
	}

	access, err := s.subscriptionService.CheckServiceAccess(db, userID, svc.ID)
	if err != nil {
		return nil, nil, err
	}
	if !access.HasAccess {
		return nil, nil, apperrors.ErrServiceNotAvailable
	}

	if !access.IsUnlimited {
		usage, err := s.usageService.GetCurrentUsage(db, userID, svc.ID, access.UsagePeriod)
		if err != nil {
			return nil, nil, err
		}
		if usage >= access.Limit {
			return nil, nil, apperrors.ErrUsageLimitReached
		}
	}

	if svc.CreditCost > 0 {
		check, err := s.creditService.CheckCreditAvailability(db, userID, svc.CreditCost)
		if err != nil {
			return nil, nil, err
		}
		if !check.HasEnoughCredits {
			return nil, nil, apperrors.ErrInsufficientCredits.WithDetails(check.Message)
		}
	}

	result, err := generate()
	if err != nil {
		return nil, nil, err
	}

	if svc.CreditCost > 0 {
		// The store-level guard re-validates the balance here, so a
		// racing deduction past the check above still cannot overdraw.
		if _, err := s.creditService.DeductCredits(db, userID, svc.ID, action, svc.CreditCost, result); err != nil {
			return nil, nil, err
		}
	}

	period := access.UsagePeriod
	if period == "" {
		period = models.UsagePeriodMonthly
	}
	if err := s.usageService.IncrementUsage(db, userID, svc.ID, period); err != nil {
		return nil, nil, err
	}

	logger.CtxInfo(ctx, "Billable action executed",
		"service", serviceName, "action", string(action), "credits_used", svc.CreditCost)

	return result, &ExecutionMeta{
		ServiceName: serviceName,
		ServiceID:   svc.ID,
		CreditsUsed: svc.CreditCost,
	}, nil
}
