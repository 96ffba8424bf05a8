package dto

import (
	"xideaflow_backend/internal/models"
)

// CreditBalance is the API view of a credit account. Available is
// always derived, never stored.
type CreditBalance struct {
	UserID           string          `json:"user_id"`
	TotalCredits     int             `json:"total_credits"`
	UsedCredits      int             `json:"used_credits"`
	AvailableCredits int             `json:"available_credits"`
	PlanType         models.PlanType `json:"plan_type"`
}

// CreditCheck is the verdict of an availability probe.
type CreditCheck struct {
	HasEnoughCredits bool   `json:"has_enough_credits"`
	RequiredCredits  int    `json:"required_credits"`
	AvailableCredits int    `json:"available_credits"`
	Message          string `json:"message,omitempty"`
}

type PurchaseCreditsRequest struct {
	Credits int `json:"credits" validate:"required,min=1,max=10000"`
}

// CheckoutResponse points the client at the provider-hosted checkout.
// TransactionID is set for credit purchases only; subscription
// checkouts are reconciled by subscription id instead.
type CheckoutResponse struct {
	CheckoutURL   string `json:"checkout_url"`
	TransactionID string `json:"transaction_id,omitempty"`
}

type CreditHistory struct {
	Transactions []models.CreditTransaction `json:"transactions"`
	UsageLogs    []models.CreditUsageLog    `json:"usage_logs"`
}
