package serverutils

import (
	"errors"
	"os"
)

// JwtSecret resolves the HMAC key shared by token signing and verification.
// An empty key would make every token forgeable, so it is rejected outright.
func JwtSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	return []byte(secret), nil
}
