// Package auth provides the per-request auth context. Every request carries
// an Identity slot that stays empty (anonymous) unless a configured Verifier
// accepts the bearer token. The provider never rejects a request.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ranorsolutions/barber-booking-web/pkg/service"
	logs "github.com/ranorsolutions/http-common-go/pkg/log/logger"
)

const identityKey = "authIdentity"

// Roles understood by the navigation bar.
const (
	RoleCustomer = "customer"
	RoleBarber   = "barber"
)

var ErrNoVerifier = errors.New("no token verifier configured")

// Identity is the caller attached to a request.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// IsBarber reports whether the identity carries the barber role.
func (i *Identity) IsBarber() bool {
	return i != nil && i.Role == RoleBarber
}

// Verifier turns a bearer token into an Identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// NewVerifier picks the verifier configured in cfg: Firebase when a project or
// credentials file is set, an HMAC JWT verifier when only a secret is set.
// It returns a nil Verifier when nothing is configured.
func NewVerifier(ctx context.Context, cfg service.AuthConfig) (Verifier, error) {
	switch {
	case cfg.FirebaseCredentialsPath != "" || cfg.FirebaseProjectID != "":
		v, err := NewFirebaseVerifier(ctx, &FirebaseConfig{
			CredentialsPath: cfg.FirebaseCredentialsPath,
			ProjectID:       cfg.FirebaseProjectID,
		})
		if err != nil {
			return nil, err
		}
		return v, nil
	case cfg.Secret != "":
		v, err := NewJWTVerifier(cfg.Secret)
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, nil
	}
}

// Provider returns a Gin middleware that attaches the auth context.
func Provider(v Verifier, log *logs.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || v == nil {
			c.Next()
			return
		}

		token, err := bearerToken(authHeader)
		if err != nil {
			if log != nil {
				log.Warn("ignoring Authorization header: %v", err)
			}
			c.Next()
			return
		}

		id, err := v.Verify(c.Request.Context(), token)
		if err != nil {
			if log != nil {
				log.Warn("continuing as anonymous: %v", err)
			}
			c.Next()
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// FromContext retrieves the identity attached by Provider, or nil when the
// request is anonymous.
func FromContext(c *gin.Context) *Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(*Identity); ok {
			return id
		}
	}
	return nil
}

func bearerToken(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", fmt.Errorf("invalid Authorization format")
	}
	return strings.TrimSpace(parts[1]), nil
}

func normalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case RoleBarber:
		return RoleBarber
	case RoleCustomer:
		return RoleCustomer
	default:
		return ""
	}
}
