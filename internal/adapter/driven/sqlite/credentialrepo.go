package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ericfisherdev/leadbot/internal/domain/model"
	"github.com/ericfisherdev/leadbot/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialRepo)(nil)

// CredentialRepo is the SQLite implementation of the CredentialStore port,
// one row per external identity. Tokens are encrypted with AES-256-GCM before
// write and decrypted after read; base URLs are stored in the clear.
type CredentialRepo struct {
	db  *DB
	key []byte // 32-byte AES-256 key; nil when encryption is disabled.
}

// NewCredentialRepo creates a CredentialRepo. key must be 32 bytes for
// AES-256-GCM, or nil to disable credential storage (token-bearing operations
// return driven.ErrEncryptionKeyNotSet).
func NewCredentialRepo(db *DB, key []byte) *CredentialRepo {
	return &CredentialRepo{db: db, key: key}
}

// Get retrieves the credential for the given identity with the token
// decrypted. Returns driven.ErrCredentialNotFound if no row exists.
func (r *CredentialRepo) Get(ctx context.Context, identity string) (*model.Credential, error) {
	if r.key == nil {
		return nil, driven.ErrEncryptionKeyNotSet
	}

	const query = `SELECT identity, token, base_url, created_at, last_used_at FROM credentials WHERE identity = ?`
	cred, err := r.scanOne(r.db.Reader.QueryRowContext(ctx, query, identity))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, driven.ErrCredentialNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get credential for %q: %w", identity, err)
	}
	return cred, nil
}

// Upsert creates or replaces the credential for the given identity. The
// single-writer connection makes concurrent upserts for the same identity
// last-writer-wins without app-level locking. created_at is preserved on
// replace; last_used_at is refreshed.
func (r *CredentialRepo) Upsert(ctx context.Context, identity, token, baseURL string) (*model.Credential, error) {
	encrypted, err := r.encrypt(token)
	if err != nil {
		return nil, err
	}

	const query = `
		INSERT INTO credentials (identity, token, base_url) VALUES (?, ?, ?)
		ON CONFLICT(identity) DO UPDATE SET
			token = excluded.token,
			base_url = excluded.base_url,
			last_used_at = CURRENT_TIMESTAMP`
	if _, err := r.db.Writer.ExecContext(ctx, query, identity, encrypted, baseURL); err != nil {
		return nil, fmt.Errorf("upsert credential for %q: %w", identity, err)
	}

	return r.Get(ctx, identity)
}

// UpdateBaseURL changes only the base URL of an existing credential.
// Returns driven.ErrCredentialNotFound if no row exists.
func (r *CredentialRepo) UpdateBaseURL(ctx context.Context, identity, baseURL string) error {
	const query = `UPDATE credentials SET base_url = ? WHERE identity = ?`
	res, err := r.db.Writer.ExecContext(ctx, query, baseURL, identity)
	if err != nil {
		return fmt.Errorf("update base url for %q: %w", identity, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update base url for %q: %w", identity, err)
	}
	if n == 0 {
		return driven.ErrCredentialNotFound
	}
	return nil
}

// Touch bumps last_used_at. Missing rows are not an error; callers treat the
// whole operation as best-effort.
func (r *CredentialRepo) Touch(ctx context.Context, identity string) error {
	const query = `UPDATE credentials SET last_used_at = CURRENT_TIMESTAMP WHERE identity = ?`
	if _, err := r.db.Writer.ExecContext(ctx, query, identity); err != nil {
		return fmt.Errorf("touch credential for %q: %w", identity, err)
	}
	return nil
}

// Delete removes the credential for the given identity and returns the
// number of rows removed (0 or 1).
func (r *CredentialRepo) Delete(ctx context.Context, identity string) (int64, error) {
	const query = `DELETE FROM credentials WHERE identity = ?`
	res, err := r.db.Writer.ExecContext(ctx, query, identity)
	if err != nil {
		return 0, fmt.Errorf("delete credential for %q: %w", identity, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete credential for %q: %w", identity, err)
	}
	return n, nil
}

func (r *CredentialRepo) scanOne(row *sql.Row) (*model.Credential, error) {
	var cred model.Credential
	var encrypted, createdAt, lastUsedAt string
	if err := row.Scan(&cred.Identity, &encrypted, &cred.BaseURL, &createdAt, &lastUsedAt); err != nil {
		return nil, err
	}

	token, err := r.decrypt(encrypted)
	if err != nil {
		return nil, fmt.Errorf("decrypt token: %w", err)
	}
	cred.Token = token

	if cred.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if cred.LastUsedAt, err = parseTime(lastUsedAt); err != nil {
		return nil, fmt.Errorf("parse last_used_at: %w", err)
	}

	return &cred, nil
}

// parseTime parses SQLite CURRENT_TIMESTAMP ("2006-01-02 15:04:05") and
// RFC 3339 timestamps, both treated as UTC.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// encrypt encrypts the token using AES-256-GCM and returns a base64 string
// of nonce || ciphertext || tag.
func (r *CredentialRepo) encrypt(plaintext string) (string, error) {
	if r.key == nil {
		return "", driven.ErrEncryptionKeyNotSet
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts a base64-encoded AES-256-GCM ciphertext.
func (r *CredentialRepo) decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("gcm.Open: %w", err)
	}

	return string(plaintext), nil
}
