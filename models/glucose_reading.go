package models

import (
	"time"

	"gorm.io/gorm"
)

// GlucoseReading holds one day's measurement pair. At most one row exists
// per (user_id, reading_date); ReadingDate is truncated to UTC midnight.
type GlucoseReading struct {
	gorm.Model
	UserID      uint      `gorm:"uniqueIndex:idx_user_reading_date;not null"`
	ReadingDate time.Time `gorm:"uniqueIndex:idx_user_reading_date;not null"`
	PreReading  *float64  // mg/dL, before meal; nil when not yet submitted
	PostReading *float64  // mg/dL, after meal; nil when not yet submitted
}
