package models

import "time"

// ScheduledContent is a queued social media post. The backend only
// stores the schedule; publishing is done by an external worker.
type ScheduledContent struct {
	BaseModel
	UserID      string          `gorm:"type:uuid;index;not null" json:"user_id"`
	Content     string          `gorm:"not null" json:"content"`
	Platform    ContentPlatform `gorm:"type:varchar(20);not null" json:"platform"`
	ScheduledAt time.Time       `gorm:"not null;index" json:"scheduled_at"`
	Status      ContentStatus   `gorm:"type:varchar(20);not null;default:'SCHEDULED'" json:"status"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
