package authutils

import (
	"crypto/sha256"
	"encoding/hex"

	"erm-backend/config"
)

func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(config.Conf.Auth.PasswordSalt + password))
	return hex.EncodeToString(sum[:])
}
