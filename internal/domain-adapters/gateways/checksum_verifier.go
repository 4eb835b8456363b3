package gateways

import (
	"context"
	"crypto/sha1" //nolint:gosec // G505: upstream manifests publish SHA-1 digests
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/ochairo/playport/internal/domain/entities"
)

// checksumVerifier verifies downloaded artifacts against upstream-published digests
type checksumVerifier struct{}

// NewChecksumVerifier creates a new checksum verifier
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewChecksumVerifier() *checksumVerifier {
	return &checksumVerifier{}
}

// VerifyChecksum hashes filePath with the expected digest's algorithm and compares
func (v *checksumVerifier) VerifyChecksum(_ context.Context, filePath string, expected *entities.Checksum) error {
	if expected == nil {
		return nil
	}

	actual, err := v.CalculateChecksum(filePath, expected.Algorithm)
	if err != nil {
		return err
	}

	if !strings.EqualFold(actual, expected.Value) {
		return entities.NewError(entities.KindIntegrity, "verify "+expected.Algorithm,
			fmt.Errorf("checksum mismatch: expected %s, got %s", expected.Value, actual))
	}

	return nil
}

// CalculateChecksum returns the lowercase hex digest of a file
func (v *checksumVerifier) CalculateChecksum(filePath, algorithm string) (string, error) {
	var h hash.Hash
	switch strings.ToLower(algorithm) {
	case "sha1":
		//nolint:gosec // G401: matching a published SHA-1, not signing
		h = sha1.New()
	case "sha256", "":
		h = sha256.New()
	default:
		return "", entities.NewError(entities.KindIntegrity, "hash artifact", fmt.Errorf("unsupported algorithm %q", algorithm))
	}

	//nolint:gosec // G304: File path is the artifact the pipeline just downloaded
	f, err := os.Open(filePath)
	if err != nil {
		return "", entities.NewError(entities.KindIntegrity, "hash artifact", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return "", entities.NewError(entities.KindIntegrity, "hash artifact", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
