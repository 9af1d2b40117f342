package password

import (
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

// Algorithm names accepted by New.
const (
	AlgoBcrypt   = "bcrypt"
	AlgoArgon2id = "argon2id"
)

const argon2idPrefix = "$argon2id$"

// Hasher produces salted one-way hashes for new passwords.
type Hasher interface {
	Hash(pw string) (string, error)
	// Verify reports whether pw matches hash. It accepts hashes produced by
	// any supported algorithm, so switching algorithms keeps old accounts working.
	Verify(hash, pw string) bool
}

// New returns the hasher for algo.
func New(algo string) (Hasher, error) {
	switch strings.ToLower(algo) {
	case "", AlgoBcrypt:
		return BcryptHasher{}, nil
	case AlgoArgon2id:
		return Argon2idHasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password hash algorithm %q", algo)
	}
}

// BcryptHasher implementation.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) Hash(pw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b BcryptHasher) Verify(hash, pw string) bool { return Verify(hash, pw) }

// Argon2idHasher implementation. A nil Params uses argon2id.DefaultParams.
type Argon2idHasher struct{ Params *argon2id.Params }

func (a Argon2idHasher) Hash(pw string) (string, error) {
	params := a.Params
	if params == nil {
		params = argon2id.DefaultParams
	}
	return argon2id.CreateHash(pw, params)
}

func (a Argon2idHasher) Verify(hash, pw string) bool { return Verify(hash, pw) }

// Verify checks pw against a bcrypt or argon2id hash.
func Verify(hash, pw string) bool {
	if strings.HasPrefix(hash, argon2idPrefix) {
		match, err := argon2id.ComparePasswordAndHash(pw, hash)
		return err == nil && match
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
