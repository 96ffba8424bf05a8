package models

// UserServiceUsage is a per-period usage counter. Period holds the
// bucket key ("2026-08-28", "2026-W35", "2026-08") so a new bucket
// starts implicitly when the key changes.
type UserServiceUsage struct {
	BaseModel
	UserID      string      `gorm:"type:uuid;not null;uniqueIndex:idx_user_service_period" json:"user_id"`
	ServiceID   string      `gorm:"type:uuid;not null;uniqueIndex:idx_user_service_period" json:"service_id"`
	Period      string      `gorm:"type:varchar(16);not null;uniqueIndex:idx_user_service_period" json:"period"`
	UsagePeriod UsagePeriod `gorm:"type:varchar(10);not null;uniqueIndex:idx_user_service_period" json:"usage_period"`
	UsageCount  int         `gorm:"not null;default:0" json:"usage_count"`

	User    *User    `gorm:"foreignKey:UserID" json:"-"`
	Service *Service `gorm:"foreignKey:ServiceID" json:"-"`
}
