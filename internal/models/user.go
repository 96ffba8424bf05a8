package models

import "time"

type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Name         string `json:"name"`

	Credit        *UserCredit        `gorm:"foreignKey:UserID" json:"credit,omitempty"`
	Subscriptions []UserSubscription `gorm:"foreignKey:UserID" json:"-"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"type:uuid;index;not null" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
