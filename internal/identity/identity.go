// Package identity verifies bearer tokens issued by the external identity
// provider. The provider owns authentication end to end; this service only
// checks signatures against the provider's JWKS and reads claims.
package identity

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	Email         string         `json:"email"`
	EmailVerified bool           `json:"email_verified"`
	UserMetadata  map[string]any `json:"user_metadata"`
	AppMetadata   map[string]any `json:"app_metadata"`
	jwt.RegisteredClaims
}

// FirstName resolves the given name with the provider's fallback chain:
// explicit first_name, then the first word of full_name, then empty.
func (c *Claims) FirstName() string {
	if v := c.metadataString("first_name"); v != "" {
		return v
	}
	if full := c.metadataString("full_name"); full != "" {
		return strings.Fields(full)[0]
	}
	return ""
}

func (c *Claims) LastName() string {
	if v := c.metadataString("last_name"); v != "" {
		return v
	}
	if full := c.metadataString("full_name"); full != "" {
		if parts := strings.Fields(full); len(parts) > 1 {
			return strings.Join(parts[1:], " ")
		}
	}
	return ""
}

func (c *Claims) metadataString(key string) string {
	if c.UserMetadata == nil {
		return ""
	}
	if v, ok := c.UserMetadata[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

type Verifier interface {
	Verify(tokenStr string) (*Claims, error)
}

// JWKSVerifier validates token signatures against the provider's published
// key set, refreshed in the background.
type JWKSVerifier struct {
	jwks *keyfunc.JWKS
}

func NewJWKSVerifier(jwksURL string) (*JWKSVerifier, error) {
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		RefreshInterval: time.Hour,
		RefreshErrorHandler: func(err error) {
			slog.Error("jwks refresh failed", "error", err)
		},
	})
	if err != nil {
		return nil, err
	}
	return &JWKSVerifier{jwks: jwks}, nil
}

func (v *JWKSVerifier) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, v.jwks.Keyfunc)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (v *JWKSVerifier) Close() {
	v.jwks.EndBackground()
}
