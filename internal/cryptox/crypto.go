// Package cryptox hashes and verifies member PIN codes.
//
// Digests are bcrypt strings with a fixed cost; the salt is random per call,
// so hashing the same PIN twice yields two different digests that both
// verify.
package cryptox

import (
	"fmt"

	"github.com/dmitrijs2005/ganfan/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for PIN digests.
const DefaultCost = 10

// PINLength is the number of digits in a PIN.
const PINLength = 6

// ErrInvalidPIN is returned by ValidatePIN for anything but six digits.
var ErrInvalidPIN = fmt.Errorf("%w: pin must be exactly 6 digits", common.ErrorValidation)

// PasswordHasher is a one-way hash over PIN codes.
type PasswordHasher interface {
	Hash(plaintext []byte) (string, error)
	Verify(plaintext []byte, digest string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost. Zero means DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns a salted bcrypt digest of plaintext.
func (h *BcryptHasher) Hash(plaintext []byte) (string, error) {
	digest, err := bcrypt.GenerateFromPassword(plaintext, h.cost)
	if err != nil {
		return "", fmt.Errorf("hash pin: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether digest was produced from plaintext. Empty,
// malformed and foreign digests simply do not match.
func (h *BcryptHasher) Verify(plaintext []byte, digest string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), plaintext) == nil
}

// ValidatePIN checks the PIN shape before it reaches the hasher or the store.
func ValidatePIN(pin []byte) error {
	if len(pin) != PINLength {
		return ErrInvalidPIN
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return ErrInvalidPIN
		}
	}
	return nil
}
