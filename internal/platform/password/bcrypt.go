// Package password provides the bcrypt implementation of credential hashing.
package password

import (
	"golang.org/x/crypto/bcrypt"

	"blog_backend/internal/feature/auth/usecase"
)

// Bcrypt hashes and verifies passwords with golang.org/x/crypto/bcrypt.
// bcrypt embeds a random salt in each hash, so hashing the same plaintext
// twice yields different values while Verify still succeeds. The cost factor
// makes hashing deliberately slow to resist brute force.
type Bcrypt struct {
	cost int
}

// Compile-time check to ensure Bcrypt implements usecase.Hasher.
var _ usecase.Hasher = (*Bcrypt)(nil)

// NewBcrypt creates a Bcrypt hasher. A cost of 0 or less uses bcrypt.DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash generates a salted one-way hash of the plaintext password.
func (b *Bcrypt) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), b.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether the plaintext password matches the stored hash.
func (b *Bcrypt) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
