package services

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"xideaflow_backend/internal/logger"
	"xideaflow_backend/internal/models"
	"xideaflow_backend/internal/repositories"
	"xideaflow_backend/internal/services/dto"
	"xideaflow_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// Webhook alert names Paddle classic delivers.
const (
	alertPaymentSucceeded             = "payment_succeeded"
	alertSubscriptionCreated          = "subscription_created"
	alertSubscriptionUpdated          = "subscription_updated"
	alertSubscriptionCancelled        = "subscription_cancelled"
	alertSubscriptionPaymentSucceeded = "subscription_payment_succeeded"
)

// PaddleService reconciles provider webhook events with the ledger and
// subscription state. Delivery is at-least-once; every handler must
// tolerate replays.
type PaddleService interface {
	VerifyWebhookSignature(form url.Values) bool
	HandleWebhook(ctx context.Context, db *gorm.DB, form url.Values) error
	CreateSubscriptionCheckout(db *gorm.DB, userID, planID, email string) (*dto.CheckoutResponse, error)
	CancelProviderSubscription(paddleSubID string) error
}

type PaddleServiceImpl struct {
	client              *PaddleClient
	creditRepo          repositories.CreditRepository
	subscriptionRepo    repositories.SubscriptionRepository
	creditService       CreditService
	subscriptionService SubscriptionService
}

func NewPaddleService(
	client *PaddleClient,
	creditRepo repositories.CreditRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	creditService CreditService,
	subscriptionService SubscriptionService,
) PaddleService {
	return &PaddleServiceImpl{
		client:              client,
		creditRepo:          creditRepo,
		subscriptionRepo:    subscriptionRepo,
		creditService:       creditService,
		subscriptionService: subscriptionService,
	}
}

func (s *PaddleServiceImpl) VerifyWebhookSignature(form url.Values) bool {
	return s.client.VerifyWebhookSignature(form)
}

// CreateSubscriptionCheckout builds a provider checkout link for a
// paid plan. Activation happens later through subscription_created.
func (s *PaddleServiceImpl) CreateSubscriptionCheckout(db *gorm.DB, userID, planID, email string) (*dto.CheckoutResponse, error) {
	plan, err := s.subscriptionService.FindPlanByID(db, planID)
	if err != nil {
		return nil, err
	}
	if plan.PaddlePlanID == nil || *plan.PaddlePlanID == "" {
		return nil, apperrors.NewBadRequestError("Plan is not configured for provider checkout")
	}

	checkoutURL, err := s.client.GenerateSubscriptionPayLink(*plan.PaddlePlanID, email, PassthroughPayload{
		UserID: userID,
		PlanID: plan.ID,
	})
	if err != nil {
		return nil, apperrors.ErrPaddleError.WithError(err)
	}

	return &dto.CheckoutResponse{CheckoutURL: checkoutURL}, nil
}

func (s *PaddleServiceImpl) CancelProviderSubscription(paddleSubID string) error {
	if err := s.client.CancelSubscription(paddleSubID); err != nil {
		return apperrors.ErrPaddleError.WithError(err)
	}
	return nil
}

// HandleWebhook dispatches a verified event. Unknown alert names are
// logged and acked so the provider stops retrying them.
func (s *PaddleServiceImpl) HandleWebhook(ctx context.Context, db *gorm.DB, form url.Values) error {
	alert := form.Get("alert_name")
	logger.CtxInfo(ctx, "Processing payment webhook", "alert_name", alert, "alert_id", form.Get("alert_id"))

	switch alert {
	case alertPaymentSucceeded:
		return s.handlePaymentSucceeded(ctx, db, form)
	case alertSubscriptionCreated:
		return s.handleSubscriptionCreated(ctx, db, form)
	case alertSubscriptionUpdated:
		return s.handleSubscriptionUpdated(ctx, db, form)
	case alertSubscriptionCancelled:
		return s.handleSubscriptionCancelled(ctx, db, form)
	case alertSubscriptionPaymentSucceeded:
		return s.handleSubscriptionPaymentSucceeded(ctx, db, form)
	default:
		logger.CtxInfo(ctx, "Ignoring unhandled webhook alert", "alert_name", alert)
		return nil
	}
}

func parsePassthrough(form url.Values) (*PassthroughPayload, error) {
	raw := form.Get("passthrough")
	if raw == "" {
		return nil, apperrors.NewBadRequestError("Webhook passthrough is missing")
	}

	var payload PassthroughPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, apperrors.NewBadRequestError("Webhook passthrough is not valid JSON")
	}
	if payload.UserID == "" {
		return nil, apperrors.NewBadRequestError("Webhook passthrough has no user_id")
	}

	return &payload, nil
}

// handlePaymentSucceeded completes a one-off credit purchase. The
// PENDING guard in CompletePending makes the credit grant happen
// exactly once per order, no matter how often the event is delivered.
func (s *PaddleServiceImpl) handlePaymentSucceeded(ctx context.Context, db *gorm.DB, form url.Values) error {
	payload, err := parsePassthrough(form)
	if err != nil {
		return err
	}
	orderID := form.Get("order_id")

	if payload.TransactionID == "" {
		return s.completeUntrackedPurchase(ctx, db, payload, orderID)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		txn, completedNow, err := s.creditRepo.CompletePending(tx, payload.TransactionID, orderID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrTransactionNotFound) {
				logger.CtxWarn(ctx, "payment_succeeded for unknown transaction",
					"transaction_id", payload.TransactionID, "order_id", orderID)
				return nil
			}
			return apperrors.InternalError(err)
		}
		if !completedNow {
			logger.CtxInfo(ctx, "payment_succeeded replay ignored",
				"transaction_id", txn.ID, "order_id", orderID)
			return nil
		}

		if err := s.creditRepo.AddCredits(tx, txn.UserID, txn.Amount, nil); err != nil {
			return apperrors.InternalError(err)
		}

		logger.CtxInfo(ctx, "Credit purchase completed",
			"user_id", txn.UserID, "credits", txn.Amount, "order_id", orderID)
		return nil
	})
}

// completeUntrackedPurchase covers checkouts created outside
// PurchaseCredits (e.g. a provider-side checkout link). The unique
// index on paddle_order_id turns replays into no-ops; any other
// failure propagates so the provider retries the delivery.
func (s *PaddleServiceImpl) completeUntrackedPurchase(ctx context.Context, db *gorm.DB, payload *PassthroughPayload, orderID string) error {
	if payload.Credits <= 0 {
		return apperrors.NewBadRequestError("Webhook passthrough has no credits")
	}
	if orderID == "" {
		return apperrors.NewBadRequestError("Webhook has no order_id")
	}

	if _, err := s.creditRepo.FindTransactionByPaddleOrderID(db, orderID); err == nil {
		logger.CtxInfo(ctx, "payment_succeeded replay ignored", "order_id", orderID)
		return nil
	} else if !apperrors.Is(err, repositories.ErrTransactionNotFound) {
		return apperrors.InternalError(err)
	}

	if _, err := s.creditService.GetUserCredits(db, payload.UserID); err != nil {
		return err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		txn := &models.CreditTransaction{
			UserID:        payload.UserID,
			Type:          models.TransactionTypePurchase,
			Amount:        payload.Credits,
			Status:        models.TransactionStatusCompleted,
			Description:   "Credit purchase via provider checkout",
			PaddleOrderID: &orderID,
		}
		if err := s.creditRepo.CreateTransaction(tx, txn); err != nil {
			return err
		}
		return s.creditRepo.AddCredits(tx, payload.UserID, payload.Credits, nil)
	})
	if err != nil {
		// Losing the insert race against a concurrent duplicate
		// delivery is the only error that means "already processed".
		if apperrors.Is(err, gorm.ErrDuplicatedKey) {
			logger.CtxInfo(ctx, "payment_succeeded replay ignored", "order_id", orderID)
			return nil
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Credit purchase completed",
		"user_id", payload.UserID, "credits", payload.Credits, "order_id", orderID)
	return nil
}

// handleSubscriptionCreated activates the purchased plan. A replay is
// detected by the provider subscription id already being bound.
func (s *PaddleServiceImpl) handleSubscriptionCreated(ctx context.Context, db *gorm.DB, form url.Values) error {
	subID := form.Get("subscription_id")
	if subID == "" {
		return apperrors.NewBadRequestError("Webhook has no subscription_id")
	}

	if _, err := s.subscriptionRepo.FindByPaddleSubscriptionID(db, subID); err == nil {
		logger.CtxInfo(ctx, "subscription_created replay ignored", "subscription_id", subID)
		return nil
	} else if !apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
		return apperrors.InternalError(err)
	}

	payload, err := parsePassthrough(form)
	if err != nil {
		return err
	}
	if payload.PlanID == "" {
		return apperrors.NewBadRequestError("Webhook passthrough has no plan_id")
	}

	custID := form.Get("user_id")
	var custIDPtr *string
	if custID != "" {
		custIDPtr = &custID
	}

	if _, err := s.subscriptionService.CreateUserSubscription(db, payload.UserID, payload.PlanID, &subID, custIDPtr); err != nil {
		return err
	}

	logger.CtxInfo(ctx, "Subscription activated",
		"user_id", payload.UserID, "plan_id", payload.PlanID, "subscription_id", subID)
	return nil
}

func (s *PaddleServiceImpl) handleSubscriptionUpdated(ctx context.Context, db *gorm.DB, form url.Values) error {
	subID := form.Get("subscription_id")
	if subID == "" {
		return apperrors.NewBadRequestError("Webhook has no subscription_id")
	}

	fields := map[string]interface{}{
		"is_active": form.Get("status") == "active",
	}
	if nextBill := form.Get("next_bill_date"); nextBill != "" {
		if endDate, err := time.Parse("2006-01-02", nextBill); err == nil {
			fields["end_date"] = endDate
		}
	}

	err := s.subscriptionRepo.UpdateByPaddleSubscriptionID(db, subID, fields)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
			logger.CtxWarn(ctx, "subscription_updated for unknown subscription", "subscription_id", subID)
			return nil
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *PaddleServiceImpl) handleSubscriptionCancelled(ctx context.Context, db *gorm.DB, form url.Values) error {
	subID := form.Get("subscription_id")
	if subID == "" {
		return apperrors.NewBadRequestError("Webhook has no subscription_id")
	}

	sub, err := s.subscriptionRepo.FindByPaddleSubscriptionID(db, subID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
			logger.CtxWarn(ctx, "subscription_cancelled for unknown subscription", "subscription_id", subID)
			return nil
		}
		return apperrors.InternalError(err)
	}

	fields := map[string]interface{}{
		"is_active":  false,
		"auto_renew": false,
	}
	if effective := form.Get("cancellation_effective_date"); effective != "" {
		if endDate, err := time.Parse("2006-01-02", effective); err == nil {
			fields["end_date"] = endDate
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.subscriptionRepo.UpdateByPaddleSubscriptionID(tx, subID, fields); err != nil {
			return err
		}
		return s.creditRepo.SetPlanType(tx, sub.UserID, models.PlanTypeFree)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Subscription cancelled", "user_id", sub.UserID, "subscription_id", subID)
	return nil
}

// handleSubscriptionPaymentSucceeded grants the plan's included
// credits for a renewal period.
func (s *PaddleServiceImpl) handleSubscriptionPaymentSucceeded(ctx context.Context, db *gorm.DB, form url.Values) error {
	subID := form.Get("subscription_id")
	if subID == "" {
		return apperrors.NewBadRequestError("Webhook has no subscription_id")
	}

	sub, err := s.subscriptionRepo.FindByPaddleSubscriptionID(db, subID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
			logger.CtxWarn(ctx, "subscription_payment_succeeded for unknown subscription", "subscription_id", subID)
			return nil
		}
		return apperrors.InternalError(err)
	}

	if sub.Plan == nil || sub.Plan.CreditsIncluded <= 0 {
		return nil
	}

	_, err = s.creditService.AddCredits(db, sub.UserID, sub.Plan.CreditsIncluded,
		models.TransactionTypeSubscriptionGrant, "Subscription renewal credits")
	if err != nil {
		return err
	}

	logger.CtxInfo(ctx, "Renewal credits granted",
		"user_id", sub.UserID, "credits", sub.Plan.CreditsIncluded, "subscription_id", subID)
	return nil
}
