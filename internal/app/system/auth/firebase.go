// internal/app/system/auth/firebase.go
package auth

import (
	"context"
	"encoding/base64"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseVerifier validates Firebase ID tokens. The frontend signs
// users in with Firebase and sends the resulting ID token as the bearer
// credential on every request.
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier builds a verifier from a base64-encoded service
// account JSON blob (the form the credential takes in config, so it can
// live in a single env var).
func NewFirebaseVerifier(ctx context.Context, credentialsB64 string) (*FirebaseVerifier, error) {
	creds, err := base64.StdEncoding.DecodeString(credentialsB64)
	if err != nil {
		return nil, fmt.Errorf("decode firebase credentials: %w", err)
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth client: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

// Verify checks the ID token's signature and expiry and maps its
// standard claims onto an Identity. Verification failures all collapse
// to ErrInvalidToken; the caller does not need to distinguish expired
// from forged.
func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	id := Identity{UID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		id.Email = email
	}
	if name, ok := decoded.Claims["name"].(string); ok {
		id.Name = name
	}
	if picture, ok := decoded.Claims["picture"].(string); ok {
		id.PhotoURL = picture
	}
	return id, nil
}
