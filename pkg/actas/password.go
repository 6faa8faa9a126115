package actas

import (
	"errors"
)

// CheckPasswordHash is a utility function that checks if a password matches a hash
func CheckPasswordHash(password, hashedPassword string) (bool, error) {
	if password == "" || hashedPassword == "" {
		return false, errors.New("password and hashed password cannot be empty")
	}

	hasher := &BcryptV1Hasher{}
	return hasher.Verify(password, hashedPassword)
}

// HashPassword is a utility function that hashes a password
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}

	hasher := &BcryptV1Hasher{}
	return hasher.Hash(password)
}
