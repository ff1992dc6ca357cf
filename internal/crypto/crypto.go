package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// At-rest codec for user credentials (provider API keys, platform tokens).
// Every encryption derives a one-off AES-256 key from the process-wide master
// secret and a fresh random salt, so the stored secret alone is not enough to
// decrypt anything quickly if the database leaks.
const (
	saltLength       = 64
	ivLength         = 16
	tagLength        = 16
	pbkdf2Iterations = 100000
	keyLength        = 32

	// MinMasterSecretLength is the minimum accepted ENCRYPTION_KEY length.
	// A shorter master secret undermines every stored credential.
	MinMasterSecretLength = 32
)

var ErrWeakMasterSecret = errors.New("encryption master secret must be at least 32 characters long")

var masterSecret []byte

// Init loads the process-wide master secret. The server must refuse to start
// when this fails.
func Init(secret string) error {
	if len(secret) < MinMasterSecretLength {
		return ErrWeakMasterSecret
	}
	masterSecret = []byte(secret)
	return nil
}

func deriveKey(salt []byte) []byte {
	return pbkdf2.Key(masterSecret, salt, pbkdf2Iterations, keyLength, sha512.New)
}

// Encrypt seals plaintext with AES-256-GCM and returns
// hex(salt | iv | tag | ciphertext). Salt and IV are freshly random on every
// call, so encrypting the same value twice yields different output.
func Encrypt(plaintext string) (string, error) {
	if len(masterSecret) == 0 {
		return "", ErrWeakMasterSecret
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	iv := make([]byte, ivLength)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to generate iv: %w", err)
	}

	block, err := aes.NewCipher(deriveKey(salt))
	if err != nil {
		return "", err
	}
	aesgcm, err := cipher.NewGCMWithNonceSize(block, ivLength)
	if err != nil {
		return "", err
	}

	// Seal appends the auth tag after the ciphertext; the stored layout keeps
	// the tag in front of the ciphertext instead.
	sealed := aesgcm.Seal(nil, iv, []byte(plaintext), nil)
	ciphertext := sealed[:len(sealed)-tagLength]
	tag := sealed[len(sealed)-tagLength:]

	out := make([]byte, 0, saltLength+ivLength+tagLength+len(ciphertext))
	out = append(out, salt...)
	out = append(out, iv...)
	out = append(out, tag...)
	out = append(out, ciphertext...)
	return hex.EncodeToString(out), nil
}

// Decrypt reverses Encrypt. It fails closed: malformed input, a wrong master
// secret, or a tampered tag/ciphertext all return ("", false) instead of an
// error, so a corrupted stored field reads as absent.
func Decrypt(encoded string) (string, bool) {
	if len(masterSecret) == 0 {
		return "", false
	}

	data, err := hex.DecodeString(encoded)
	if err != nil || len(data) < saltLength+ivLength+tagLength {
		return "", false
	}

	salt := data[:saltLength]
	iv := data[saltLength : saltLength+ivLength]
	tag := data[saltLength+ivLength : saltLength+ivLength+tagLength]
	ciphertext := data[saltLength+ivLength+tagLength:]

	block, err := aes.NewCipher(deriveKey(salt))
	if err != nil {
		return "", false
	}
	aesgcm, err := cipher.NewGCMWithNonceSize(block, ivLength)
	if err != nil {
		return "", false
	}

	sealed := make([]byte, 0, len(ciphertext)+tagLength)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aesgcm.Open(nil, iv, sealed, nil)
	if err != nil {
		return "", false
	}
	return string(plaintext), true
}
