package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

// JWTVerifier verifies HMAC-signed access tokens.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) (*JWTVerifier, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &JWTVerifier{secret: []byte(secret)}, nil
}

// Verify parses the token and maps its claims to an Identity. The subject is
// read from "uid", falling back to "sub".
func (j *JWTVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error parsing token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}

	if claims["disabled"] == true {
		return nil, fmt.Errorf("user account %v is disabled", claims["uid"])
	}

	uid, _ := claims["uid"].(string)
	if uid == "" {
		uid, _ = claims["sub"].(string)
	}
	if uid == "" {
		return nil, errors.New("token has no subject")
	}

	id := &Identity{UID: uid}
	id.Email, _ = claims["email"].(string)
	if role, ok := claims["role"].(string); ok {
		id.Role = normalizeRole(role)
	}
	return id, nil
}
