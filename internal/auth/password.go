package auth

import (
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

// Names accepted by NewPasswordHasher.
const (
	HasherBcrypt   = "bcrypt"
	HasherArgon2id = "argon2id"
)

const bcryptCost = 10

// PasswordHasher hashes new passwords and verifies stored hashes. Compare
// must run in constant time with respect to the password.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// BcryptHasher hashes with bcrypt.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcryptCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (h BcryptHasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Argon2idHasher hashes with argon2id in the PHC string format.
type Argon2idHasher struct {
	Params *argon2id.Params
}

func (h Argon2idHasher) Hash(password string) (string, error) {
	params := h.Params
	if params == nil {
		params = argon2id.DefaultParams
	}
	hashed, err := argon2id.CreateHash(password, params)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hashed, nil
}

func (h Argon2idHasher) Compare(hash, password string) bool {
	ok, err := argon2id.ComparePasswordAndHash(password, hash)
	return err == nil && ok
}

// multiHasher hashes with the configured algorithm and verifies hashes of
// either algorithm, so switching PASSWORD_HASHER keeps old accounts working.
type multiHasher struct {
	primary PasswordHasher
}

func (m multiHasher) Hash(password string) (string, error) {
	return m.primary.Hash(password)
}

func (m multiHasher) Compare(hash, password string) bool {
	if strings.HasPrefix(hash, "$argon2id$") {
		return Argon2idHasher{}.Compare(hash, password)
	}
	return BcryptHasher{}.Compare(hash, password)
}

// NewPasswordHasher returns the hasher named by the PASSWORD_HASHER setting.
func NewPasswordHasher(name string) (PasswordHasher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case HasherBcrypt, "":
		return multiHasher{primary: BcryptHasher{}}, nil
	case HasherArgon2id:
		return multiHasher{primary: Argon2idHasher{}}, nil
	default:
		return nil, fmt.Errorf("unsupported password hasher %q", name)
	}
}
