package dto

import (
	"time"

	"xideaflow_backend/internal/models"
)

type ScheduleContentRequest struct {
	Content     string    `json:"content" validate:"required,min=1,max=5000"`
	Platform    string    `json:"platform" validate:"required,oneof=TWITTER FACEBOOK INSTAGRAM LINKEDIN TIKTOK"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}

type UpdateContentRequest struct {
	Content     *string    `json:"content,omitempty" validate:"omitempty,min=1,max=5000"`
	Platform    *string    `json:"platform,omitempty" validate:"omitempty,oneof=TWITTER FACEBOOK INSTAGRAM LINKEDIN TIKTOK"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

type ListContentRequest struct {
	Status string `form:"status" validate:"omitempty,oneof=SCHEDULED PUBLISHED FAILED CANCELLED"`
}

type ScheduledContentResponse struct {
	Items []models.ScheduledContent `json:"items"`
	Count int                       `json:"count"`
}
