package orchestrators

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ochairo/playport/internal/domain/entities"
	"github.com/ochairo/playport/internal/domain/interfaces"
	"github.com/ochairo/playport/internal/domain/interfaces/gateways"
)

// ChecksumVerifier interface for comparing a file against a published digest
type ChecksumVerifier interface {
	VerifyChecksum(ctx context.Context, filePath string, expected *entities.Checksum) error
}

// IntegrityOrchestrator checks a downloaded artifact against what the upstream published
// for it: an inline checksum and, when a keyring is configured, a detached signature.
type IntegrityOrchestrator struct {
	checksums       ChecksumVerifier
	signatures      gateways.SignatureVerifier
	verifyChecksums bool
	logger          interfaces.Logger
}

// IntegrityOrchestratorConfig holds configuration for the integrity checks
type IntegrityOrchestratorConfig struct {
	VerifyChecksums bool
}

// NewIntegrityOrchestrator creates a new integrity orchestrator.
// signatures may be nil, which disables signature checks.
func NewIntegrityOrchestrator(
	checksums ChecksumVerifier,
	signatures gateways.SignatureVerifier,
	config IntegrityOrchestratorConfig,
	logger interfaces.Logger,
) *IntegrityOrchestrator {
	return &IntegrityOrchestrator{
		checksums:       checksums,
		signatures:      signatures,
		verifyChecksums: config.VerifyChecksums,
		logger:          interfaces.OrNoOp(logger),
	}
}

// IntegrityResult contains the outcome of the integrity checks
type IntegrityResult struct {
	ChecksumVerified  bool
	SignatureVerified bool
	Skipped           []string
	Duration          time.Duration
}

// VerifyArtifact runs every check the location and configuration allow.
// A failed check is an Integrity error; a check with nothing to compare against is skipped.
func (o *IntegrityOrchestrator) VerifyArtifact(ctx context.Context, p *entities.Provider, version string, loc *entities.ArtifactLocation, artifact *entities.AcquiredArtifact) (*IntegrityResult, error) {
	start := time.Now()
	result := &IntegrityResult{}

	switch {
	case !o.verifyChecksums:
		result.Skipped = append(result.Skipped, "checksum verification disabled")
	case loc.Checksum == nil:
		result.Skipped = append(result.Skipped, "no published checksum")
	default:
		if err := o.verifyChecksum(ctx, loc.Checksum, artifact); err != nil {
			return nil, entities.WithContext(err, p.ID, version)
		}
		result.ChecksumVerified = true
	}

	switch {
	case loc.SignatureURL == "":
		result.Skipped = append(result.Skipped, "no published signature")
	case o.signatures == nil:
		result.Skipped = append(result.Skipped, "no signing keyring configured")
	default:
		if err := o.signatures.VerifySignature(ctx, artifact.LocalPath, loc.SignatureURL); err != nil {
			return nil, entities.WithContext(err, p.ID, version)
		}
		result.SignatureVerified = true
	}

	result.Duration = time.Since(start)
	o.logger.Debug("integrity checks finished",
		interfaces.F("provider", p.ID),
		interfaces.F("checksum", result.ChecksumVerified),
		interfaces.F("signature", result.SignatureVerified))

	return result, nil
}

// verifyChecksum reuses the SHA-256 computed while downloading instead of re-reading the file
func (o *IntegrityOrchestrator) verifyChecksum(ctx context.Context, expected *entities.Checksum, artifact *entities.AcquiredArtifact) error {
	if strings.EqualFold(expected.Algorithm, "sha256") && artifact.SHA256 != "" {
		if !strings.EqualFold(artifact.SHA256, expected.Value) {
			return entities.NewError(entities.KindIntegrity, "verify sha256",
				fmt.Errorf("checksum mismatch: expected %s, got %s", expected.Value, artifact.SHA256))
		}
		return nil
	}
	return o.checksums.VerifyChecksum(ctx, artifact.LocalPath, expected)
}

// GetIntegritySummary generates a one-line human-readable summary
func (o *IntegrityOrchestrator) GetIntegritySummary(result *IntegrityResult) string {
	if result == nil {
		return "integrity: not checked"
	}

	var checked []string
	if result.ChecksumVerified {
		checked = append(checked, "checksum")
	}
	if result.SignatureVerified {
		checked = append(checked, "signature")
	}
	if len(checked) == 0 {
		return fmt.Sprintf("integrity: unverified (%s)", strings.Join(result.Skipped, ", "))
	}
	return fmt.Sprintf("integrity: %s verified", strings.Join(checked, " and "))
}
