package password

import (
	"strings"
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// cheap parameters keep the suite fast
var testArgon = &argon2id.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestHashers(t *testing.T) {
	hashers := map[string]Hasher{
		"bcrypt":   BcryptHasher{Cost: bcrypt.MinCost},
		"argon2id": Argon2idHasher{Params: testArgon},
	}
	for name, h := range hashers {
		t.Run(name, func(t *testing.T) {
			hash, err := h.Hash("s3cret!")
			require.NoError(t, err)
			assert.NotEqual(t, "s3cret!", hash)
			assert.True(t, h.Verify(hash, "s3cret!"))
			assert.False(t, h.Verify(hash, "s3cret?"))

			again, err := h.Hash("s3cret!")
			require.NoError(t, err)
			assert.NotEqual(t, hash, again, "hashes are salted")
		})
	}
}

func TestVerify_AcceptsEitherFormat(t *testing.T) {
	b, err := BcryptHasher{Cost: bcrypt.MinCost}.Hash("pw1234")
	require.NoError(t, err)
	a, err := Argon2idHasher{Params: testArgon}.Hash("pw1234")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(a, argon2idPrefix))

	assert.True(t, Verify(b, "pw1234"))
	assert.True(t, Verify(a, "pw1234"))
	assert.False(t, Verify("not-a-hash", "pw1234"))
	assert.False(t, Verify("", ""))
}

func TestNew(t *testing.T) {
	h, err := New("bcrypt")
	require.NoError(t, err)
	assert.IsType(t, BcryptHasher{}, h)

	h, err = New("ARGON2ID")
	require.NoError(t, err)
	assert.IsType(t, Argon2idHasher{}, h)

	_, err = New("md5")
	assert.Error(t, err)
}
