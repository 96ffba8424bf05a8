package repositories

import (
	"errors"

	"xideaflow_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrCreditAccountNotFound = errors.New("credit account not found")
	ErrInsufficientBalance   = errors.New("insufficient credit balance")
	ErrTransactionNotFound   = errors.New("credit transaction not found")
)

type CreditRepository interface {
	FindByUserID(db *gorm.DB, userID string) (*models.UserCredit, error)
	Create(db *gorm.DB, credit *models.UserCredit) error
	CreateBonusEvent(db *gorm.DB, event *models.BonusCreditEvent) error

	DeductWithLog(db *gorm.DB, userID string, log *models.CreditUsageLog) error
	AddCredits(db *gorm.DB, userID string, amount int, txn *models.CreditTransaction) error
	SetPlanType(db *gorm.DB, userID string, planType models.PlanType) error

	CreateTransaction(db *gorm.DB, txn *models.CreditTransaction) error
	CompletePending(db *gorm.DB, txnID, orderID string) (*models.CreditTransaction, bool, error)
	FindTransactionByPaddleOrderID(db *gorm.DB, orderID string) (*models.CreditTransaction, error)

	ListTransactions(db *gorm.DB, userID string) ([]models.CreditTransaction, error)
	ListUsageLogs(db *gorm.DB, userID string) ([]models.CreditUsageLog, error)
}

type CreditRepositoryImpl struct{}

func NewCreditRepository() CreditRepository {
	return &CreditRepositoryImpl{}
}

func (r *CreditRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.UserCredit, error) {
	var credit models.UserCredit
	err := db.First(&credit, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreditAccountNotFound
		}
		return nil, err
	}
	return &credit, nil
}

func (r *CreditRepositoryImpl) Create(db *gorm.DB, credit *models.UserCredit) error {
	return db.Create(credit).Error
}

func (r *CreditRepositoryImpl) CreateBonusEvent(db *gorm.DB, event *models.BonusCreditEvent) error {
	return db.Create(event).Error
}

// DeductWithLog spends log.Cost credits and records the usage log in
// one transaction. The balance guard lives in the UPDATE itself, so two
// concurrent deductions can never overdraw the account.
func (r *CreditRepositoryImpl) DeductWithLog(db *gorm.DB, userID string, log *models.CreditUsageLog) error {
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.UserCredit{}).
			Where("user_id = ? AND total_credits - used_credits >= ?", userID, log.Cost).
			Update("used_credits", gorm.Expr("used_credits + ?", log.Cost))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientBalance
		}
		return tx.Create(log).Error
	})
}

// AddCredits grants credits and records the transaction atomically.
// Pass txn as nil to grant without a transaction row (webhook flows
// that already hold a PENDING transaction).
func (r *CreditRepositoryImpl) AddCredits(db *gorm.DB, userID string, amount int, txn *models.CreditTransaction) error {
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.UserCredit{}).
			Where("user_id = ?", userID).
			Update("total_credits", gorm.Expr("total_credits + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCreditAccountNotFound
		}
		if txn != nil {
			return tx.Create(txn).Error
		}
		return nil
	})
}

func (r *CreditRepositoryImpl) SetPlanType(db *gorm.DB, userID string, planType models.PlanType) error {
	return db.Model(&models.UserCredit{}).
		Where("user_id = ?", userID).
		Update("plan_type", planType).Error
}

func (r *CreditRepositoryImpl) CreateTransaction(db *gorm.DB, txn *models.CreditTransaction) error {
	return db.Create(txn).Error
}

// CompletePending flips a transaction from PENDING to COMPLETED and
// stamps the provider order id. The guarded UPDATE makes webhook
// retries idempotent: only the first delivery reports completedNow.
func (r *CreditRepositoryImpl) CompletePending(db *gorm.DB, txnID, orderID string) (*models.CreditTransaction, bool, error) {
	var txn models.CreditTransaction
	err := db.First(&txn, "id = ?", txnID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrTransactionNotFound
		}
		return nil, false, err
	}

	res := db.Model(&models.CreditTransaction{}).
		Where("id = ? AND status = ?", txn.ID, models.TransactionStatusPending).
		Updates(map[string]interface{}{
			"status":          models.TransactionStatusCompleted,
			"paddle_order_id": orderID,
		})
	if res.Error != nil {
		return nil, false, res.Error
	}

	return &txn, res.RowsAffected == 1, nil
}

func (r *CreditRepositoryImpl) FindTransactionByPaddleOrderID(db *gorm.DB, orderID string) (*models.CreditTransaction, error) {
	var txn models.CreditTransaction
	err := db.First(&txn, "paddle_order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &txn, nil
}

func (r *CreditRepositoryImpl) ListTransactions(db *gorm.DB, userID string) ([]models.CreditTransaction, error) {
	var txns []models.CreditTransaction
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&txns).Error
	return txns, err
}

func (r *CreditRepositoryImpl) ListUsageLogs(db *gorm.DB, userID string) ([]models.CreditUsageLog, error) {
	var logs []models.CreditUsageLog
	err := db.Preload("Service").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

// NewUsageLog is a small helper so services do not repeat JSON wiring.
func NewUsageLog(userID, serviceID string, action models.CreditActionType, cost int, result []byte) *models.CreditUsageLog {
	log := &models.CreditUsageLog{
		UserID:    userID,
		ServiceID: serviceID,
		Action:    action,
		Cost:      cost,
		Success:   true,
	}
	if result != nil {
		log.Result = datatypes.JSON(result)
	}
	return log
}
