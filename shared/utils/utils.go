package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const kodeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateKodeTransaksi returns a receipt code such as TRX-20261019-7KQ2MZ.
// Uniqueness is finally enforced by the database index.
func GenerateKodeTransaksi(now time.Time) string {
	const length = 6

	result := make([]byte, length)
	for i := range result {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(kodeCharset))))
		result[i] = kodeCharset[num.Int64()]
	}

	return fmt.Sprintf("TRX-%s-%s", now.Format("20060102"), string(result))
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword checks if a password matches a hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
