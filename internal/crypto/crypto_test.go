package crypto

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-master-secret-0123456789abcdef"

func TestMain(m *testing.M) {
	if err := Init(testSecret); err != nil {
		panic(err)
	}
	m.Run()
}

func TestInit_RejectsWeakSecret(t *testing.T) {
	defer func() { _ = Init(testSecret) }()

	tests := []struct {
		name   string
		secret string
		ok     bool
	}{
		{"empty", "", false},
		{"31 chars", strings.Repeat("a", 31), false},
		{"32 chars", strings.Repeat("a", 32), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Init(tt.secret)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrWeakMasterSecret)
			}
		})
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	for _, plaintext := range []string{
		"abc123-some-api-key",
		"x",
		strings.Repeat("long credential material ", 40),
		"unicode: ключ 🔑",
	} {
		encoded, err := Encrypt(plaintext)
		require.NoError(t, err)

		got, ok := Decrypt(encoded)
		require.True(t, ok, "decrypt should succeed for %q", plaintext)
		assert.Equal(t, plaintext, got)
	}
}

func TestEncrypt_NonDeterministic(t *testing.T) {
	first, err := Encrypt("same input")
	require.NoError(t, err)
	second, err := Encrypt("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "fresh salt and iv must vary the output")
}

func TestDecrypt_TamperedData(t *testing.T) {
	encoded, err := Encrypt("secret value")
	require.NoError(t, err)

	raw, err := hex.DecodeString(encoded)
	require.NoError(t, err)

	flip := func(index int) string {
		tampered := make([]byte, len(raw))
		copy(tampered, raw)
		tampered[index] ^= 0x01
		return hex.EncodeToString(tampered)
	}

	tests := []struct {
		name  string
		index int
	}{
		{"salt region", 0},
		{"iv region", saltLength},
		{"tag region", saltLength + ivLength},
		{"ciphertext region", saltLength + ivLength + tagLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Decrypt(flip(tt.index))
			assert.False(t, ok)
			assert.Empty(t, got)
		})
	}
}

func TestDecrypt_MalformedInput(t *testing.T) {
	for _, encoded := range []string{
		"",
		"not hex at all",
		"deadbeef", // far too short
		hex.EncodeToString(make([]byte, saltLength+ivLength)), // missing tag
	} {
		got, ok := Decrypt(encoded)
		assert.False(t, ok, "input %q should fail closed", encoded)
		assert.Empty(t, got)
	}
}

func TestDecrypt_WrongMasterSecret(t *testing.T) {
	encoded, err := Encrypt("value under the original secret")
	require.NoError(t, err)

	require.NoError(t, Init("a-completely-different-master-secret!!"))
	defer func() { _ = Init(testSecret) }()

	got, ok := Decrypt(encoded)
	assert.False(t, ok)
	assert.Empty(t, got)
}
