package digest

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// Digest is a pluggable one-way password digest. Sum produces the stored
// form of a secret; Verify compares a stored digest against a presented
// secret without leaking timing information.
type Digest interface {
	Sum(secret string) (string, error)
	Verify(stored, secret string) bool
}

// SHA256 digests secrets with a single SHA-256 pass. Clients of the wire
// contract pre-hash their password the same way, so the same value arrives
// at register and login time.
type SHA256 struct{}

// NewSHA256 creates a SHA256 digest
func NewSHA256() *SHA256 {
	return &SHA256{}
}

// Sum returns the lowercase hex SHA-256 of the secret
func (d *SHA256) Sum(secret string) (string, error) {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:]), nil
}

// Verify compares in constant time
func (d *SHA256) Verify(stored, secret string) bool {
	sum, _ := d.Sum(secret)
	return subtle.ConstantTimeCompare([]byte(stored), []byte(sum)) == 1
}

// Bcrypt digests secrets with bcrypt. Use this where the server should
// strengthen the (possibly already client-hashed) secret at rest.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a Bcrypt digest with the default cost
func NewBcrypt() *Bcrypt {
	return &Bcrypt{cost: bcrypt.DefaultCost}
}

// Sum returns the bcrypt hash of the secret
func (d *Bcrypt) Sum(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), d.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify compares a stored bcrypt hash against the presented secret
func (d *Bcrypt) Verify(stored, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(secret)) == nil
}
