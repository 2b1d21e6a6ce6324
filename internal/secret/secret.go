// Package secret encrypts small values, such as provider API keys, before they are persisted.
package secret

import (
	"fmt"

	"github.com/fernet/fernet-go"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/apperrors"
)

// noExpiry disables fernet's token age check; stored secrets never expire.
const noExpiry = -1

// Box encrypts and decrypts values with a fernet key.
// A Box without a key refuses every operation with apperrors.ErrEncryptionKeyMissing.
type Box struct {
	key *fernet.Key
}

// NewBox parses an encoded fernet key. An empty key returns a disabled Box.
func NewBox(encodedKey string) (*Box, error) {
	if encodedKey == "" {
		return &Box{}, nil
	}
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("invalid encryption key: %w", err)
	}
	return &Box{key: key}, nil
}

// GenerateKey returns a new random encoded fernet key.
func GenerateKey() (string, error) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return key.Encode(), nil
}

// Enabled reports whether the Box has a key.
func (b *Box) Enabled() bool {
	return b != nil && b.key != nil
}

// Encrypt returns the fernet token for plaintext.
func (b *Box) Encrypt(plaintext string) (string, error) {
	if !b.Enabled() {
		return "", apperrors.ErrEncryptionKeyMissing
	}
	token, err := fernet.EncryptAndSign([]byte(plaintext), b.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt: %w", err)
	}
	return string(token), nil
}

// Decrypt verifies and decrypts a token produced by Encrypt.
func (b *Box) Decrypt(token string) (string, error) {
	if !b.Enabled() {
		return "", apperrors.ErrEncryptionKeyMissing
	}
	plaintext := fernet.VerifyAndDecrypt([]byte(token), noExpiry, []*fernet.Key{b.key})
	if plaintext == nil {
		return "", apperrors.ErrDecryptFailed
	}
	return string(plaintext), nil
}
