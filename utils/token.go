package utils

import (
	"math/rand"
	"time"
)

// GenerateRandomToken produces an alphanumeric code of the given length,
// used for the emailed password-reset codes.
func GenerateRandomToken(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	rand.Seed(time.Now().UnixNano())

	token := make([]byte, length)
	for i := range token {
		token[i] = charset[rand.Intn(len(charset))]
	}
	return string(token)
}
