package models

import (
    "time"

    "gorm.io/gorm"
)

type User struct {
    gorm.Model
    Email          string `gorm:"uniqueIndex;not null"`
    Password       string `gorm:"not null"`
    FullName       string
    DiabetesType   string  // "type1" | "type2" | "gestational" | ""
    TargetLow      float64 // mg/dL lower alert bound; 0 means use default
    TargetHigh     float64 // mg/dL upper alert bound; 0 means use default
    ProfilePicture string
    AlertEmails    bool // also email out-of-range alerts
    MFAEnabled     bool
    MFACode        string
    ResetToken     string
    ResetTokenExp  time.Time
    Disabled       bool
}
