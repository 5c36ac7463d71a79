package services

import (
	"database/sql"
	"fmt"

	"familjebudget/backend/database"
	"familjebudget/backend/security"
)

// SecretType represents the type of secret being stored/retrieved
type SecretType string

const (
	SecretDatabaseURL SecretType = "database_url"
)

// StoreSecret encrypts and stores a per-user secret in the database.
func StoreSecret(userID string, secretType SecretType, value string) error {
	encrypted, err := security.Encrypt(value)
	if err != nil {
		return fmt.Errorf("failed to encrypt secret: %w", err)
	}

	_, err = database.DB.Exec(`
		INSERT INTO user_secrets (user_id, secret_type, value)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, secret_type) DO UPDATE SET value = excluded.value, created_at = CURRENT_TIMESTAMP
	`, userID, string(secretType), encrypted)
	if err != nil {
		return fmt.Errorf("failed to store secret: %w", err)
	}
	return nil
}

// GetSecret fetches and decrypts a per-user secret. A missing secret
// is reported as ("", sql.ErrNoRows).
func GetSecret(userID string, secretType SecretType) (string, error) {
	var encrypted string
	err := database.DB.QueryRow(`
		SELECT value FROM user_secrets WHERE user_id = ? AND secret_type = ?
	`, userID, string(secretType)).Scan(&encrypted)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", sql.ErrNoRows
		}
		return "", fmt.Errorf("failed to read secret: %w", err)
	}

	value, err := security.Decrypt(encrypted)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt secret: %w", err)
	}
	return value, nil
}

// DeleteSecret removes a stored secret.
func DeleteSecret(userID string, secretType SecretType) error {
	_, err := database.DB.Exec(`
		DELETE FROM user_secrets WHERE user_id = ? AND secret_type = ?
	`, userID, string(secretType))
	return err
}
