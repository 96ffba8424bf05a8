package models

import "time"

type SubscriptionPlan struct {
	BaseModel
	Name            string  `gorm:"uniqueIndex;not null" json:"name"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `gorm:"not null;default:0" json:"price"`
	Currency        string  `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	CreditsIncluded int     `gorm:"not null;default:0" json:"credits_included"`
	DurationDays    int     `gorm:"not null;default:30" json:"duration_days"`
	IsRecurring     bool    `gorm:"not null;default:true" json:"is_recurring"`
	IsActive        bool    `gorm:"not null;default:true" json:"is_active"`
	PaddlePlanID    *string `gorm:"uniqueIndex" json:"paddle_plan_id,omitempty"`

	PlanServices []PlanService `gorm:"foreignKey:PlanID" json:"plan_services,omitempty"`
}

// PlanService binds a service to a plan with a per-period allowance.
// UsageLimit -1 means unlimited; 0 means the service is listed but has
// no allowance.
type PlanService struct {
	BaseModel
	PlanID      string      `gorm:"type:uuid;not null;uniqueIndex:idx_plan_service" json:"plan_id"`
	ServiceID   string      `gorm:"type:uuid;not null;uniqueIndex:idx_plan_service" json:"service_id"`
	UsageLimit  int         `gorm:"not null;default:0" json:"usage_limit"`
	UsagePeriod UsagePeriod `gorm:"type:varchar(10);not null;default:'MONTHLY'" json:"usage_period"`

	Plan    *SubscriptionPlan `gorm:"foreignKey:PlanID" json:"-"`
	Service *Service          `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

// UserSubscription links a user to a plan. At most one row per user may
// be active; a partial unique index created at migration enforces it.
type UserSubscription struct {
	BaseModel
	UserID               string     `gorm:"type:uuid;index;not null" json:"user_id"`
	PlanID               string     `gorm:"type:uuid;not null" json:"plan_id"`
	StartDate            time.Time  `gorm:"not null;default:now()" json:"start_date"`
	EndDate              *time.Time `json:"end_date,omitempty"`
	IsActive             bool       `gorm:"not null;default:true" json:"is_active"`
	AutoRenew            bool       `gorm:"not null;default:true" json:"auto_renew"`
	PaddleSubscriptionID *string    `gorm:"uniqueIndex" json:"paddle_subscription_id,omitempty"`
	PaddleCustomerID     *string    `json:"paddle_customer_id,omitempty"`

	User *User             `gorm:"foreignKey:UserID" json:"-"`
	Plan *SubscriptionPlan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}
