package services

import (
	"errors"
	"fmt"

	"github.com/MominAnxs/diabetes-tracker/config"
	"github.com/MominAnxs/diabetes-tracker/models"
	"github.com/MominAnxs/diabetes-tracker/utils"
)

type ProfileInput struct {
	FullName       string   `json:"full_name"`
	DiabetesType   string   `json:"diabetes_type"`
	TargetLow      *float64 `json:"target_low"`
	TargetHigh     *float64 `json:"target_high"`
	ProfilePicture string   `json:"profile_picture"` // base64 data URL
	AlertEmails    *bool    `json:"alert_emails"`
	MFAEnabled     *bool    `json:"mfa_enabled"`
}

func GetUserProfile(email string) (map[string]interface{}, error) {
	var user models.User
	result := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil {
		return nil, errors.New("user not found or disabled")
	}

	targetLow, targetHigh := user.TargetLow, user.TargetHigh
	if targetLow <= 0 {
		targetLow = utils.DefaultTargetLow
	}
	if targetHigh <= 0 {
		targetHigh = utils.DefaultTargetHigh
	}

	return map[string]interface{}{
		"id":              user.ID,
		"email":           user.Email,
		"full_name":       user.FullName,
		"diabetes_type":   user.DiabetesType,
		"target_low":      targetLow,
		"target_high":     targetHigh,
		"profile_picture": user.ProfilePicture,
		"alert_emails":    user.AlertEmails,
		"mfa_enabled":     user.MFAEnabled,
	}, nil
}

// UpdateUserProfile applies only the fields the caller supplied; omitted
// fields keep their stored values.
func UpdateUserProfile(email string, input ProfileInput) error {
	var user models.User
	result := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil {
		return errors.New("user not found or disabled")
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.DiabetesType != "" {
		user.DiabetesType = input.DiabetesType
	}
	if input.TargetLow != nil && *input.TargetLow > 0 {
		user.TargetLow = *input.TargetLow
	}
	if input.TargetHigh != nil && *input.TargetHigh > 0 {
		user.TargetHigh = *input.TargetHigh
	}
	if user.TargetLow > 0 && user.TargetHigh > 0 && user.TargetLow >= user.TargetHigh {
		return errors.New("target_low must be below target_high")
	}
	if input.AlertEmails != nil {
		user.AlertEmails = *input.AlertEmails
	}
	if input.MFAEnabled != nil {
		user.MFAEnabled = *input.MFAEnabled
	}

	if input.ProfilePicture != "" {
		url, err := utils.UploadBase64ImageToS3(input.ProfilePicture, user.Email)
		if err != nil {
			return fmt.Errorf("failed to upload image: %v", err)
		}
		user.ProfilePicture = url
	}

	return config.DB.Save(&user).Error
}

func DeleteUser(email string) error {
	var user models.User
	result := config.DB.First(&user, "email = ?", email)
	if result.Error != nil {
		return result.Error
	}
	user.Disabled = true
	return config.DB.Save(&user).Error
}
