package model

import "time"

// Credential authorizes backend API calls on behalf of one external identity.
// Identity is the opaque user id supplied by the chat transport; at most one
// credential exists per identity.
type Credential struct {
	Identity   string
	Token      string
	BaseURL    string
	CreatedAt  time.Time
	LastUsedAt time.Time
}

// TokenPrefix returns the short display form of the token. The full token is
// never rendered back to the user.
func (c Credential) TokenPrefix() string {
	const n = 8
	if len(c.Token) <= n {
		return c.Token
	}
	return c.Token[:n] + "..."
}
