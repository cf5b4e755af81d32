package services

import (
	"errors"

	"github.com/MominAnxs/diabetes-tracker/config"
	"github.com/MominAnxs/diabetes-tracker/models"
	"github.com/MominAnxs/diabetes-tracker/utils"
)

func RegisterUser(email, password, fullName string) error {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Email:    email,
		Password: hashedPassword,
		FullName: fullName,
		Disabled: false,
	}

	result := config.DB.Create(&user)
	return result.Error
}

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	result := config.DB.First(&user, "email = ? AND disabled = ?", email, false)
	if result.Error != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}
