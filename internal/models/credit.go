package models

import (
	"gorm.io/datatypes"
)

// UserCredit is the per-user credit account. Available balance is
// always derived as TotalCredits - UsedCredits, never stored.
type UserCredit struct {
	BaseModel
	UserID       string   `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	TotalCredits int      `gorm:"not null;default:0" json:"total_credits"`
	UsedCredits  int      `gorm:"not null;default:0" json:"used_credits"`
	PlanType     PlanType `gorm:"type:varchar(20);not null;default:'FREE'" json:"plan_type"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// AvailableCredits returns the spendable balance.
func (c *UserCredit) AvailableCredits() int {
	return c.TotalCredits - c.UsedCredits
}

// CreditTransaction records credit grants: purchases, subscription
// grants, bonuses, refunds. PaddleOrderID ties a purchase to the
// provider order so webhook retries can be deduplicated.
type CreditTransaction struct {
	BaseModel
	UserID        string            `gorm:"type:uuid;index;not null" json:"user_id"`
	Type          TransactionType   `gorm:"type:varchar(30);not null" json:"type"`
	Amount        int               `gorm:"not null" json:"amount"`
	Status        TransactionStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Description   string            `json:"description,omitempty"`
	PaddleOrderID *string           `gorm:"uniqueIndex" json:"paddle_order_id,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// CreditUsageLog records every billable deduction.
type CreditUsageLog struct {
	BaseModel
	UserID    string           `gorm:"type:uuid;index;not null" json:"user_id"`
	ServiceID string           `gorm:"type:uuid;index;not null" json:"service_id"`
	Action    CreditActionType `gorm:"type:varchar(40);not null" json:"action"`
	Cost      int              `gorm:"not null" json:"cost"`
	Result    datatypes.JSON   `json:"result,omitempty"`
	Success   bool             `gorm:"not null;default:true" json:"success"`

	User    *User    `gorm:"foreignKey:UserID" json:"-"`
	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

// BonusCreditEvent records one-off credit grants like the signup bonus.
type BonusCreditEvent struct {
	BaseModel
	UserID      string `gorm:"type:uuid;index;not null" json:"user_id"`
	Event       string `gorm:"not null" json:"event"`
	Credits     int    `gorm:"not null" json:"credits"`
	Description string `json:"description,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
