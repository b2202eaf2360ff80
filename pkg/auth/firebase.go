package auth

import (
	"context"
	"fmt"
	"os"

	fb "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// AuthAPI defines the subset of Firebase Auth methods we use.
// This makes it mockable in tests.
type AuthAPI interface {
	VerifyIDToken(ctx context.Context, token string) (*fbauth.Token, error)
}

// FirebaseConfig defines the Firebase configuration.
type FirebaseConfig struct {
	CredentialsPath string
	ProjectID       string
}

// FirebaseVerifier verifies Firebase ID tokens.
type FirebaseVerifier struct {
	Auth   AuthAPI
	Config *FirebaseConfig
}

// NewFirebaseVerifier initializes a Firebase app and its Auth client.
func NewFirebaseVerifier(ctx context.Context, cfg *FirebaseConfig) (*FirebaseVerifier, error) {
	if cfg == nil {
		cfg = getConfigFromEnv()
	}

	opts := []option.ClientOption{}
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	var appCfg *fb.Config
	if cfg.ProjectID != "" {
		appCfg = &fb.Config{ProjectID: cfg.ProjectID}
	}

	app, err := fb.NewApp(ctx, appCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase Auth: %w", err)
	}

	return &FirebaseVerifier{Auth: authClient, Config: cfg}, nil
}

func getConfigFromEnv() *FirebaseConfig {
	return &FirebaseConfig{
		CredentialsPath: os.Getenv("FIREBASE_CREDENTIALS"),
		ProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
	}
}

// Verify verifies and decodes a Firebase ID token.
func (f *FirebaseVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if f == nil || f.Auth == nil {
		return nil, ErrNoVerifier
	}

	tok, err := f.Auth.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("invalid Firebase token: %w", err)
	}

	id := &Identity{UID: tok.UID}
	if email, ok := tok.Claims["email"].(string); ok {
		id.Email = email
	}
	if role, ok := tok.Claims["role"].(string); ok {
		id.Role = normalizeRole(role)
	}
	return id, nil
}
