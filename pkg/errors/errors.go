// Package errors provides standardized error handling for the rundeck-mcp
// server. It implements structured error types with proper wrapping and
// classification following Go 1.20+ error handling best practices.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common error conditions
var (
	// ErrWriteDisabled is returned when a mutating operation is attempted
	// while the write capability was not granted at startup.
	ErrWriteDisabled = errors.New("write operations are disabled (start with --enable-write-tools to allow job execution)")

	// ErrInvalidQuery is returned when a query object fails its bounds
	// checks before any remote call is made.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrInvalidConfig is returned for configuration problems.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// TransportError represents a network or HTTP failure from the Rundeck API.
// StatusCode and Body are zero/empty when the request never produced a
// response. Transport errors are never retried.
type TransportError struct {
	Op         string // e.g. "GET /project/ops/jobs"
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		if e.Body != "" {
			return fmt.Sprintf("rundeck api: %s: status %d: %s", e.Op, e.StatusCode, e.Body)
		}
		return fmt.Sprintf("rundeck api: %s: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("rundeck api: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MappingError represents a remote response that did not match the expected
// shape for an entity. The call fails as a whole; no partial entity is
// returned.
type MappingError struct {
	Entity string // e.g. "job", "execution"
	Field  string // offending field, empty when the whole payload is wrong
	Err    error
}

func (e *MappingError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("mapping %s: field %q: %v", e.Entity, e.Field, e.Err)
	}
	return fmt.Sprintf("mapping %s: %v", e.Entity, e.Err)
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

// ViolationKind classifies a single option validation failure.
type ViolationKind string

const (
	MissingRequiredOption ViolationKind = "missing_required_option"
	InvalidEnforcedValue  ViolationKind = "invalid_enforced_value"
)

// OptionViolation describes one option validation failure. Allowed is only
// populated for InvalidEnforcedValue.
type OptionViolation struct {
	Kind    ViolationKind
	Option  string
	Value   string
	Allowed []string
}

func (v OptionViolation) String() string {
	switch v.Kind {
	case MissingRequiredOption:
		return fmt.Sprintf("required option %q is missing", v.Option)
	case InvalidEnforcedValue:
		quoted := make([]string, len(v.Allowed))
		for i, a := range v.Allowed {
			quoted[i] = fmt.Sprintf("%q", a)
		}
		return fmt.Sprintf("option %q value %q is not in allowed values: %s",
			v.Option, v.Value, strings.Join(quoted, ", "))
	default:
		return fmt.Sprintf("option %q: %s", v.Option, v.Kind)
	}
}

// ValidationError represents a job-run options mapping that was rejected
// before any write call was issued. Summary holds the human-readable option
// reference for the job so the caller can self-correct and retry.
type ValidationError struct {
	JobID      string
	Violations []OptionViolation
	Summary    string
}

func (e *ValidationError) Error() string {
	lines := []string{"job execution validation failed:"}
	for _, v := range e.Violations {
		lines = append(lines, "  - "+v.String())
	}
	if e.Summary != "" {
		lines = append(lines, "", e.Summary)
	}
	return strings.Join(lines, "\n")
}

// Error wrapping constructors

func NewTransportError(op string, statusCode int, body string) error {
	return &TransportError{Op: op, StatusCode: statusCode, Body: body}
}

func WrapTransportError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{Op: op, Err: err}
}

func NewMappingError(entity, field string, err error) error {
	return &MappingError{Entity: entity, Field: field, Err: err}
}

func NewValidationError(jobID string, violations []OptionViolation, summary string) error {
	return &ValidationError{JobID: jobID, Violations: violations, Summary: summary}
}

// Error classification functions

func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func IsMappingError(err error) bool {
	var me *MappingError
	return errors.As(err, &me)
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsWriteDisabled(err error) bool {
	return errors.Is(err, ErrWriteDisabled)
}

// AsValidationError extracts a ValidationError from an error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsTransportError extracts a TransportError from an error chain.
func AsTransportError(err error) (*TransportError, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// StatusCode returns the HTTP status carried by a transport error, or 0.
func StatusCode(err error) int {
	if te, ok := AsTransportError(err); ok {
		return te.StatusCode
	}
	return 0
}
