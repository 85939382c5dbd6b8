package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
	"tablepoll-service/internal/app/contracts"
	"tablepoll-service/internal/pkg/exceptions"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength      = 16
	nonceLength     = 12
	keyLength       = 32
	pbkdf2Iteration = 100000
)

// secretsService seals small credential payloads into opaque blobs the
// client carries instead of the service storing anything. Layout of a blob
// is base64url(salt | nonce | ciphertext) with a key derived per blob from
// the master key via PBKDF2-SHA256.
type secretsService struct {
	masterKey []byte
}

func NewSecretsService(masterKey string) (contracts.SecretsService, error) {
	if masterKey == "" {
		return nil, fmt.Errorf("master key must not be empty")
	}
	return &secretsService{masterKey: []byte(masterKey)}, nil
}

func (s *secretsService) Seal(plaintext []byte) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", exceptions.ErrSecretsEncrypt(err)
	}

	aead, err := s.aeadForSalt(salt)
	if err != nil {
		return "", exceptions.ErrSecretsEncrypt(err)
	}

	nonce := make([]byte, nonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return "", exceptions.ErrSecretsEncrypt(err)
	}

	ciphertext := aead.Seal(nil, nonce, plaintext, nil)

	blob := make([]byte, 0, saltLength+nonceLength+len(ciphertext))
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = append(blob, ciphertext...)
	return base64.RawURLEncoding.EncodeToString(blob), nil
}

func (s *secretsService) Open(blob string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(blob, "="))
	if err != nil {
		return nil, exceptions.ErrSecretsDecrypt(err)
	}
	if len(raw) < saltLength+nonceLength+1 {
		return nil, exceptions.ErrSecretsDecrypt(fmt.Errorf("blob too short: %d bytes", len(raw)))
	}

	salt := raw[:saltLength]
	nonce := raw[saltLength : saltLength+nonceLength]
	ciphertext := raw[saltLength+nonceLength:]

	aead, err := s.aeadForSalt(salt)
	if err != nil {
		return nil, exceptions.ErrSecretsDecrypt(err)
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, exceptions.ErrSecretsDecrypt(err)
	}
	return plaintext, nil
}

func (s *secretsService) aeadForSalt(salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key(s.masterKey, salt, pbkdf2Iteration, keyLength, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
