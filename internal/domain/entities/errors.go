package entities

import (
	"errors"
	"fmt"
)

// ErrorKind classifies acquisition failures
type ErrorKind string

// Acquisition error kinds
const (
	KindNetwork            ErrorKind = "network"
	KindParse              ErrorKind = "parse"
	KindNotFound           ErrorKind = "not-found"
	KindInstallerExecution ErrorKind = "installer-execution"
	KindOutputDiscovery    ErrorKind = "output-discovery"
	KindIntegrity          ErrorKind = "integrity"
)

// Sentinels matched by errors.Is against any AcquisitionError of the same kind
var (
	ErrNetwork            = errors.New("network error")
	ErrParse              = errors.New("parse error")
	ErrNotFound           = errors.New("not found")
	ErrInstallerExecution = errors.New("installer execution failed")
	ErrOutputDiscovery    = errors.New("installer output not found")
	ErrIntegrity          = errors.New("integrity check failed")
)

var kindSentinels = map[ErrorKind]error{
	KindNetwork:            ErrNetwork,
	KindParse:              ErrParse,
	KindNotFound:           ErrNotFound,
	KindInstallerExecution: ErrInstallerExecution,
	KindOutputDiscovery:    ErrOutputDiscovery,
	KindIntegrity:          ErrIntegrity,
}

// AcquisitionError identifies which provider, version and step failed
type AcquisitionError struct {
	Kind     ErrorKind
	Provider ProviderID
	Version  string
	Step     string
	Err      error
}

func (e *AcquisitionError) Error() string {
	msg := e.Step
	switch {
	case e.Provider != "" && e.Version != "":
		msg = fmt.Sprintf("%s %s: %s", e.Provider, e.Version, e.Step)
	case e.Provider != "":
		msg = fmt.Sprintf("%s: %s", e.Provider, e.Step)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *AcquisitionError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind
func (e *AcquisitionError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// NewError creates an AcquisitionError without provider context; callers higher
// up attach it with WithContext.
func NewError(kind ErrorKind, step string, err error) *AcquisitionError {
	return &AcquisitionError{Kind: kind, Step: step, Err: err}
}

// WithContext fills in provider and version if they are not set yet
func WithContext(err error, provider ProviderID, version string) error {
	var acqErr *AcquisitionError
	if !errors.As(err, &acqErr) {
		return err
	}
	if acqErr.Provider == "" {
		acqErr.Provider = provider
	}
	if acqErr.Version == "" {
		acqErr.Version = version
	}
	return acqErr
}

// KindOf returns the kind of an AcquisitionError in err's chain, or "" if none
func KindOf(err error) ErrorKind {
	var acqErr *AcquisitionError
	if errors.As(err, &acqErr) {
		return acqErr.Kind
	}
	return ""
}
