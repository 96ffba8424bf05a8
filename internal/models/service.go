package models

// Service is an entry in the billable service catalog. CreditCost 0
// marks a free service that is still metered against plan limits.
type Service struct {
	BaseModel
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	DisplayName string `gorm:"not null" json:"display_name"`
	Description string `json:"description,omitempty"`
	CreditCost  int    `gorm:"not null;default:1" json:"credit_cost"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`
}
