// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/leadbot/internal/domain/model"
)

// Sentinel errors returned by CredentialStore implementations.
var (
	// ErrCredentialNotFound indicates no credential exists for the identity.
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrEncryptionKeyNotSet is returned when LEADBOT_SECRET_KEY has not been
	// configured and credential storage is disabled.
	ErrEncryptionKeyNotSet = errors.New("encryption key not configured: set LEADBOT_SECRET_KEY")
)

// CredentialStore defines the driven port for credential persistence, keyed
// by the opaque external identity. The adapter layer handles encryption at
// rest; this interface operates on plaintext tokens at the domain boundary.
type CredentialStore interface {
	// Get retrieves the credential for the given identity.
	// Returns ErrCredentialNotFound if none exists.
	Get(ctx context.Context, identity string) (*model.Credential, error)

	// Upsert creates or replaces the credential for the given identity.
	// Replacement overwrites token and base URL, refreshes last_used_at, and
	// preserves created_at. The write is atomic per identity; last writer wins.
	Upsert(ctx context.Context, identity, token, baseURL string) (*model.Credential, error)

	// UpdateBaseURL changes only the base URL of an existing credential.
	// Returns ErrCredentialNotFound if none exists.
	UpdateBaseURL(ctx context.Context, identity, baseURL string) error

	// Touch bumps last_used_at. Best-effort: callers must not fail their
	// primary operation on a touch error.
	Touch(ctx context.Context, identity string) error

	// Delete removes the credential for the given identity and returns the
	// number of rows removed (0 or 1). Deletion is irreversible.
	Delete(ctx context.Context, identity string) (int64, error)
}
