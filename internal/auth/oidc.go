package auth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/kinsman/brandsite/backend/go-services/pkg/middleware"
)

// OIDCVerifier wraps the OIDC provider and ID token verifier.
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewOIDCVerifier discovers issuer and verifies tokens issued to clientID.
func NewOIDCVerifier(ctx context.Context, issuer, clientID string) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider: %w", err)
	}
	return &OIDCVerifier{verifier: provider.Verifier(&oidc.Config{ClientID: clientID})}, nil
}

func (v *OIDCVerifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	idToken, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}
	return idToken, nil
}

// New returns the verifier selected by the configured settings: the shared secret
// wins over OIDC. It returns nil when neither is configured.
func New(ctx context.Context, jwtSecret, issuer, clientID string) (middleware.Verifier, error) {
	switch {
	case jwtSecret != "":
		v, err := NewHMACVerifier(jwtSecret)
		if err != nil {
			return nil, err
		}
		return v, nil
	case issuer != "" && clientID != "":
		v, err := NewOIDCVerifier(ctx, issuer, clientID)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	return nil, nil
}
