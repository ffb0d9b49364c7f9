// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	ApplicationNumberPrefix = "APP-"
	applicationNumberSpace  = 1_000_000_000
)

// GenerateApplicationNumber returns "APP-" followed by a random integer in
// [0, 1e9). Numbers are not checked for uniqueness.
func GenerateApplicationNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(applicationNumberSpace))
	if err != nil {
		return "", fmt.Errorf("failed to generate application number: %w", err)
	}
	return ApplicationNumberPrefix + n.String(), nil
}
