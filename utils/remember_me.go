// utils/remember_me.go
package utils

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

// RememberedCredentials represents the stored credentials for "Remember Me"
type RememberedCredentials struct {
	Email      string    `json:"email"`
	UserID     string    `json:"userId"`
	ExpiresAt  time.Time `json:"expiresAt"`
	DeviceInfo string    `json:"deviceInfo"`
}

const rememberMeTTL = 30 * 24 * time.Hour

// GenerateRememberMeToken generates a secure token for "Remember Me"
func GenerateRememberMeToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

func encryptionKey() []byte {
	key := os.Getenv("REMEMBER_ME_ENCRYPTION_KEY")
	if key == "" {
		key = "default-encryption-key-32-bytes-long"
	}
	if len(key) < 32 {
		key = key + "00000000000000000000000000000000"
	}
	return []byte(key[:32])
}

// EncryptCredentials encrypts the credentials before storing in Redis
func EncryptCredentials(credentials RememberedCredentials) (string, error) {
	jsonData, err := json.Marshal(credentials)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(encryptionKey())
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, jsonData, nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptCredentials decrypts a stored credential blob.
func DecryptCredentials(encrypted string) (RememberedCredentials, error) {
	var credentials RememberedCredentials

	data, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return credentials, err
	}

	block, err := aes.NewCipher(encryptionKey())
	if err != nil {
		return credentials, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return credentials, err
	}

	if len(data) < gcm.NonceSize() {
		return credentials, errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return credentials, err
	}

	err = json.Unmarshal(plaintext, &credentials)
	return credentials, err
}

// StoreRememberMeToken saves encrypted credentials under the token. A nil
// Redis client disables the feature silently.
func StoreRememberMeToken(rdb *redis.Client, token string, credentials RememberedCredentials) error {
	if rdb == nil {
		return errors.New("remember me storage unavailable")
	}

	encrypted, err := EncryptCredentials(credentials)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return rdb.Set(ctx, rememberMeKey(token), encrypted, rememberMeTTL).Err()
}

// GetRememberedCredentials retrieves and decrypts credentials for a token.
func GetRememberedCredentials(rdb *redis.Client, token string) (RememberedCredentials, error) {
	var credentials RememberedCredentials
	if rdb == nil {
		return credentials, errors.New("remember me storage unavailable")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	encrypted, err := rdb.Get(ctx, rememberMeKey(token)).Result()
	if err != nil {
		return credentials, err
	}

	credentials, err = DecryptCredentials(encrypted)
	if err != nil {
		return credentials, err
	}

	if time.Now().After(credentials.ExpiresAt) {
		rdb.Del(ctx, rememberMeKey(token))
		return RememberedCredentials{}, errors.New("remembered credentials expired")
	}

	return credentials, nil
}

// DeleteRememberMeToken drops a stored token, e.g. on logout.
func DeleteRememberMeToken(rdb *redis.Client, token string) error {
	if rdb == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return rdb.Del(ctx, rememberMeKey(token)).Err()
}

func rememberMeKey(token string) string {
	return fmt.Sprintf("remember_me:%s", token)
}
