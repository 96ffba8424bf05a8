package dto

import (
	"xideaflow_backend/internal/models"
)

type CreatePlanServiceBinding struct {
	ServiceID   string             `json:"service_id" validate:"required,uuid"`
	UsageLimit  int                `json:"usage_limit" validate:"min=-1"`
	UsagePeriod models.UsagePeriod `json:"usage_period" validate:"required,oneof=DAILY WEEKLY MONTHLY"`
}

type SubscribeRequest struct {
	PlanID string `json:"plan_id" validate:"required,uuid"`
}

type CreatePlanRequest struct {
	Name            string                     `json:"name" validate:"required,min=2,max=100"`
	Description     string                     `json:"description,omitempty" validate:"omitempty,max=500"`
	Price           float64                    `json:"price" validate:"min=0"`
	Currency        string                     `json:"currency,omitempty" validate:"omitempty,len=3"`
	CreditsIncluded int                        `json:"credits_included" validate:"min=0"`
	DurationDays    int                        `json:"duration_days" validate:"min=1"`
	IsRecurring     bool                       `json:"is_recurring"`
	PaddlePlanID    *string                    `json:"paddle_plan_id,omitempty"`
	Services        []CreatePlanServiceBinding `json:"services,omitempty" validate:"dive"`
}
