// Package auth adapts the external identity service. Token issuance and
// verification belong to that service; this package only supplies the bearer
// ID token for API calls and decodes its claims for the stable user ID.
package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotSignedIn is returned when no valid identity is available. Absence of
// a subject claim is treated as signed-out, not as a malformed-token error.
var ErrNotSignedIn = errors.New("not signed in")

// TokenSource yields the current bearer ID token.
type TokenSource interface {
	IDToken(ctx context.Context) (string, error)
}

// Identity is the user identity carried in the ID token payload.
type Identity struct {
	UserID string `json:"sub"`
	Email  string `json:"email"`
}

// ParseIdentity decodes the claims segment of a JWT ID token. The signature
// is not verified — that is the identity service's job, and the remote API
// re-validates every token server-side.
func ParseIdentity(token string) (Identity, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Identity{}, fmt.Errorf("malformed ID token: %w", ErrNotSignedIn)
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Identity{}, fmt.Errorf("decoding token payload: %w", ErrNotSignedIn)
	}

	var id Identity
	if err := json.Unmarshal(payload, &id); err != nil {
		return Identity{}, fmt.Errorf("parsing token claims: %w", ErrNotSignedIn)
	}
	if id.UserID == "" {
		return Identity{}, fmt.Errorf("no subject in token: %w", ErrNotSignedIn)
	}
	return id, nil
}

// StaticTokenSource returns a TokenSource that always yields the given token.
func StaticTokenSource(token string) TokenSource {
	return staticSource(token)
}

type staticSource string

func (s staticSource) IDToken(ctx context.Context) (string, error) {
	if s == "" {
		return "", ErrNotSignedIn
	}
	return string(s), nil
}

// FileTokenSource reads the token from a file on every call, so an external
// refresher can rotate it without restarting the client.
type FileTokenSource struct {
	Path string
}

func (f *FileTokenSource) IDToken(ctx context.Context) (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("reading token file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNotSignedIn
	}
	return token, nil
}
