package gateways

import (
	"context"
	"net/http"

	"github.com/ochairo/playport/internal/domain/entities"
	"github.com/ochairo/playport/internal/external-adapters/gpg"
)

// gpgVerifier wraps the external GPG adapter to implement the SignatureVerifier gateway
type gpgVerifier struct {
	verifier *gpg.Verifier
}

// NewGPGVerifier loads the keyring file and returns a signature verifier.
// The caller decides whether verification is enabled; an unreadable keyring is an error.
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewGPGVerifier(keyringPath string, httpClient *http.Client) (*gpgVerifier, error) {
	v := gpg.NewVerifier(httpClient)
	if err := v.ImportKeyFromFile(keyringPath); err != nil {
		return nil, entities.NewError(entities.KindIntegrity, "load signing keyring", err)
	}
	return &gpgVerifier{verifier: v}, nil
}

// VerifySignature verifies a detached signature downloaded from sigURL
func (g *gpgVerifier) VerifySignature(ctx context.Context, filePath, sigURL string) error {
	if err := g.verifier.VerifySignature(ctx, filePath, sigURL); err != nil {
		return entities.NewError(entities.KindIntegrity, "verify signature", err)
	}
	return nil
}
