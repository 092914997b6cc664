package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPin hashes a plain PIN using bcrypt with cost 14.
func HashPin(pin string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(pin), 14)
	return string(bytes), err
}

// CheckPinHash compares a plain PIN with a bcrypt hash.
func CheckPinHash(pin, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
