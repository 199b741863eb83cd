package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/manjiriciklum/WellnessSage-sub000/models"
)

const (
	keySize = 32 // AES-256
	ivSize  = 16
	tagSize = 16
)

var (
	// ErrIntegrity is returned when the auth tag does not verify: the
	// ciphertext or tag was tampered with or corrupted. Callers recover
	// per-record; a bad record never fails a whole list read.
	ErrIntegrity = errors.New("encrypted field failed integrity check")

	// ErrMalformedEnvelope is returned when a sealed field is missing part
	// of its ciphertext/iv/tag tuple. Decryption fails loudly rather than
	// handing ciphertext back as plaintext.
	ErrMalformedEnvelope = errors.New("encrypted field envelope is incomplete")
)

// Encryptor seals and opens field values with AES-256-GCM. Every Encrypt
// call draws a fresh random IV; reusing an IV under the same key breaks GCM.
type Encryptor struct {
	key []byte
}

func New(key []byte) (*Encryptor, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", keySize, len(key))
	}
	return &Encryptor{key: key}, nil
}

// NewFromEnv builds an Encryptor from HEALTH_ENCRYPTION_KEY (hex-encoded,
// 32 bytes). When the variable is absent a random key is generated for this
// process only; sealed data will not survive a restart, so production
// deployments must supply the key externally.
func NewFromEnv() (*Encryptor, error) {
	if encoded := os.Getenv("HEALTH_ENCRYPTION_KEY"); encoded != "" {
		key, err := hex.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("HEALTH_ENCRYPTION_KEY is not valid hex: %w", err)
		}
		return New(key)
	}
	key := make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate encryption key: %w", err)
	}
	log.Println("WARNING: HEALTH_ENCRYPTION_KEY not set, using a random per-process key; encrypted data will be unreadable after restart")
	return &Encryptor{key: key}, nil
}

// Encrypt seals plaintext into an envelope with a fresh random IV.
func (e *Encryptor) Encrypt(plaintext string) (models.EncryptedField, error) {
	block, err := aes.NewCipher(e.key)
	if err != nil {
		return models.EncryptedField{}, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, ivSize)
	if err != nil {
		return models.EncryptedField{}, fmt.Errorf("failed to create GCM: %w", err)
	}
	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return models.EncryptedField{}, fmt.Errorf("failed to generate iv: %w", err)
	}
	sealed := gcm.Seal(nil, iv, []byte(plaintext), nil)
	ciphertext, tag := sealed[:len(sealed)-tagSize], sealed[len(sealed)-tagSize:]
	return models.EncryptedField{
		Data:        hex.EncodeToString(ciphertext),
		IV:          hex.EncodeToString(iv),
		AuthTag:     hex.EncodeToString(tag),
		IsEncrypted: true,
	}, nil
}

// Decrypt opens a sealed envelope. Plain-variant fields pass through
// unchanged (pre-existing unencrypted data).
func (e *Encryptor) Decrypt(f models.EncryptedField) (string, error) {
	if !f.Sealed() {
		return f.Plain, nil
	}
	if f.Data == "" || f.IV == "" || f.AuthTag == "" {
		return "", ErrMalformedEnvelope
	}
	ciphertext, err := hex.DecodeString(f.Data)
	if err != nil {
		return "", fmt.Errorf("%w: ciphertext is not valid hex", ErrMalformedEnvelope)
	}
	iv, err := hex.DecodeString(f.IV)
	if err != nil {
		return "", fmt.Errorf("%w: iv is not valid hex", ErrMalformedEnvelope)
	}
	tag, err := hex.DecodeString(f.AuthTag)
	if err != nil {
		return "", fmt.Errorf("%w: auth tag is not valid hex", ErrMalformedEnvelope)
	}
	if len(iv) != ivSize || len(tag) != tagSize {
		return "", ErrMalformedEnvelope
	}
	block, err := aes.NewCipher(e.key)
	if err != nil {
		return "", fmt.Errorf("failed to create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, ivSize)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM: %w", err)
	}
	plaintext, err := gcm.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIntegrity, err)
	}
	return string(plaintext), nil
}

// EncryptJSON marshals v and seals the result, for opaque JSON fields such
// as health metrics.
func (e *Encryptor) EncryptJSON(v any) (models.EncryptedField, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return models.EncryptedField{}, fmt.Errorf("failed to marshal value for encryption: %w", err)
	}
	return e.Encrypt(string(raw))
}

// DecryptJSON opens a sealed envelope and unmarshals the plaintext into out.
func (e *Encryptor) DecryptJSON(f models.EncryptedField, out any) error {
	plaintext, err := e.Decrypt(f)
	if err != nil {
		return err
	}
	if plaintext == "" {
		return nil
	}
	return json.Unmarshal([]byte(plaintext), out)
}
