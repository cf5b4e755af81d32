package models

import "time"

// UserDevice is an SNS platform endpoint for one of the user's phones;
// glucose alerts are pushed to every enabled device.
type UserDevice struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index"`
	Platform    string    `gorm:"size:16"` // "android" | "ios"
	TokenHash   string    `gorm:"size:64"`
	EndpointARN string    `gorm:"size:256"`
	Enabled     bool      `gorm:"default:true"`
	UpdatedAt   time.Time
	CreatedAt   time.Time
}
