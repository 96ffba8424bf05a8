package services

import (
	"encoding/json"
	"fmt"

	"xideaflow_backend/internal/logger"
	"xideaflow_backend/internal/models"
	"xideaflow_backend/internal/repositories"
	"xideaflow_backend/internal/services/dto"
	"xideaflow_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	// SignupBonusCredits is granted once, when the credit account is
	// first touched.
	SignupBonusCredits = 10

	// CreditPriceUSD is the flat per-credit price. Tiered pricing would
	// replace this single constant.
	CreditPriceUSD = 0.01

	MaxCreditsPerPurchase = 10000
)

// CreditService is the credit ledger: balances, deductions, grants and
// purchase initiation.
type CreditService interface {
	GetUserCredits(db *gorm.DB, userID string) (*dto.CreditBalance, error)
	CheckCreditAvailability(db *gorm.DB, userID string, required int) (*dto.CreditCheck, error)
	DeductCredits(db *gorm.DB, userID, serviceID string, action models.CreditActionType, cost int, result interface{}) (*dto.CreditBalance, error)
	AddCredits(db *gorm.DB, userID string, amount int, txType models.TransactionType, description string) (*dto.CreditBalance, error)
	PurchaseCredits(db *gorm.DB, userID string, credits int, email string) (*dto.CheckoutResponse, error)
	GetCreditHistory(db *gorm.DB, userID string) (*dto.CreditHistory, error)
}

type CreditServiceImpl struct {
	creditRepo repositories.CreditRepository
	paddle     *PaddleClient
}

func NewCreditService(creditRepo repositories.CreditRepository, paddle *PaddleClient) CreditService {
	return &CreditServiceImpl{
		creditRepo: creditRepo,
		paddle:     paddle,
	}
}

// GetUserCredits returns the balance, lazily creating the account with
// the signup bonus on first touch.
func (s *CreditServiceImpl) GetUserCredits(db *gorm.DB, userID string) (*dto.CreditBalance, error) {
	credit, err := s.creditRepo.FindByUserID(db, userID)
	if err == nil {
		return toBalance(credit), nil
	}
	if !apperrors.Is(err, repositories.ErrCreditAccountNotFound) {
		return nil, apperrors.InternalError(err)
	}

	credit = &models.UserCredit{
		UserID:       userID,
		TotalCredits: SignupBonusCredits,
		UsedCredits:  0,
		PlanType:     models.PlanTypeFree,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.creditRepo.Create(tx, credit); err != nil {
			return err
		}
		return s.creditRepo.CreateBonusEvent(tx, &models.BonusCreditEvent{
			UserID:      userID,
			Event:       "signup",
			Credits:     SignupBonusCredits,
			Description: "Welcome bonus credits",
		})
	})
	if err != nil {
		// A concurrent request may have created the account first; the
		// unique index on user_id makes that loser re-read.
		if existing, ferr := s.creditRepo.FindByUserID(db, userID); ferr == nil {
			return toBalance(existing), nil
		}
		return nil, apperrors.InternalError(err)
	}

	return toBalance(credit), nil
}

func (s *CreditServiceImpl) CheckCreditAvailability(db *gorm.DB, userID string, required int) (*dto.CreditCheck, error) {
	balance, err := s.GetUserCredits(db, userID)
	if err != nil {
		return nil, err
	}

	check := &dto.CreditCheck{
		HasEnoughCredits: balance.AvailableCredits >= required,
		RequiredCredits:  required,
		AvailableCredits: balance.AvailableCredits,
	}
	if !check.HasEnoughCredits {
		check.Message = fmt.Sprintf("Insufficient credits. Required: %d, Available: %d", required, balance.AvailableCredits)
	}

	return check, nil
}

// DeductCredits spends cost credits and logs the usage. The store-level
// balance guard re-validates, so a stale availability check can never
// overdraw the account.
func (s *CreditServiceImpl) DeductCredits(db *gorm.DB, userID, serviceID string, action models.CreditActionType, cost int, result interface{}) (*dto.CreditBalance, error) {
	// Ensure the account exists before the guarded UPDATE.
	balance, err := s.GetUserCredits(db, userID)
	if err != nil {
		return nil, err
	}
	if cost <= 0 {
		return balance, nil
	}

	var payload []byte
	if result != nil {
		payload, err = json.Marshal(result)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	log := repositories.NewUsageLog(userID, serviceID, action, cost, payload)
	if err := s.creditRepo.DeductWithLog(db, userID, log); err != nil {
		if apperrors.Is(err, repositories.ErrInsufficientBalance) {
			return nil, apperrors.ErrInsufficientCredits.WithDetails(
				fmt.Sprintf("Insufficient credits. Required: %d, Available: %d", cost, balance.AvailableCredits))
		}
		return nil, apperrors.InternalError(err)
	}

	return s.GetUserCredits(db, userID)
}

func (s *CreditServiceImpl) AddCredits(db *gorm.DB, userID string, amount int, txType models.TransactionType, description string) (*dto.CreditBalance, error) {
	if _, err := s.GetUserCredits(db, userID); err != nil {
		return nil, err
	}

	txn := &models.CreditTransaction{
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Status:      models.TransactionStatusCompleted,
		Description: description,
	}
	if err := s.creditRepo.AddCredits(db, userID, amount, txn); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.GetUserCredits(db, userID)
}

// PurchaseCredits records a PENDING transaction and creates a
// provider-hosted checkout. The grant happens later, when the
// payment_succeeded webhook confirms the order.
func (s *CreditServiceImpl) PurchaseCredits(db *gorm.DB, userID string, credits int, email string) (*dto.CheckoutResponse, error) {
	if credits <= 0 || credits > MaxCreditsPerPurchase {
		return nil, apperrors.ErrInvalidCreditAmount
	}

	if _, err := s.GetUserCredits(db, userID); err != nil {
		return nil, err
	}

	txn := &models.CreditTransaction{
		UserID:      userID,
		Type:        models.TransactionTypePurchase,
		Amount:      credits,
		Status:      models.TransactionStatusPending,
		Description: fmt.Sprintf("Purchase of %d credits", credits),
	}
	if err := s.creditRepo.CreateTransaction(db, txn); err != nil {
		return nil, apperrors.InternalError(err)
	}

	price := float64(credits) * CreditPriceUSD
	checkoutURL, err := s.paddle.GeneratePayLink(PayLinkRequest{
		Title: fmt.Sprintf("%d xIdeaFlow credits", credits),
		Price: price,
		Email: email,
		Passthrough: PassthroughPayload{
			UserID:        userID,
			Credits:       credits,
			TransactionID: txn.ID,
		},
	})
	if err != nil {
		logger.Error("Failed to create payment checkout", "error", err, "user_id", userID)
		return nil, apperrors.ErrPaddleError.WithError(err)
	}

	return &dto.CheckoutResponse{
		CheckoutURL:   checkoutURL,
		TransactionID: txn.ID,
	}, nil
}

func (s *CreditServiceImpl) GetCreditHistory(db *gorm.DB, userID string) (*dto.CreditHistory, error) {
	transactions, err := s.creditRepo.ListTransactions(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	usageLogs, err := s.creditRepo.ListUsageLogs(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.CreditHistory{
		Transactions: transactions,
		UsageLogs:    usageLogs,
	}, nil
}

func toBalance(c *models.UserCredit) *dto.CreditBalance {
	return &dto.CreditBalance{
		UserID:           c.UserID,
		TotalCredits:     c.TotalCredits,
		UsedCredits:      c.UsedCredits,
		AvailableCredits: c.AvailableCredits(),
		PlanType:         c.PlanType,
	}
}
