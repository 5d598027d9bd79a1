package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportError_WithStatus(t *testing.T) {
	err := NewTransportError("GET /job/x", 404, `{"message": "Job not found"}`)

	assert.True(t, IsTransportError(err))
	assert.Equal(t, 404, StatusCode(err))
	assert.Contains(t, err.Error(), "GET /job/x")
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "Job not found")
}

func TestTransportError_Wrapped(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := WrapTransportError("GET /project/ops/jobs", cause)

	assert.True(t, IsTransportError(err))
	assert.Zero(t, StatusCode(err))
	assert.ErrorIs(t, err, cause)
}

func TestWrapTransportError_Nil(t *testing.T) {
	assert.NoError(t, WrapTransportError("GET /x", nil))
}

func TestTransportError_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("listing jobs: %w", NewTransportError("GET /x", 500, ""))

	assert.True(t, IsTransportError(err))
	te, ok := AsTransportError(err)
	require.True(t, ok)
	assert.Equal(t, 500, te.StatusCode)
}

func TestMappingError(t *testing.T) {
	err := NewMappingError("execution", "status", fmt.Errorf("unknown status %q", "scheduled"))

	assert.True(t, IsMappingError(err))
	assert.Contains(t, err.Error(), "execution")
	assert.Contains(t, err.Error(), "status")
	assert.Contains(t, err.Error(), "scheduled")
}

func TestOptionViolation_String(t *testing.T) {
	missing := OptionViolation{Kind: MissingRequiredOption, Option: "version"}
	assert.Equal(t, `required option "version" is missing`, missing.String())

	invalid := OptionViolation{
		Kind:    InvalidEnforcedValue,
		Option:  "version",
		Value:   "3.0",
		Allowed: []string{"1.0", "2.0"},
	}
	assert.Equal(t, `option "version" value "3.0" is not in allowed values: "1.0", "2.0"`, invalid.String())
}

func TestValidationError_Error(t *testing.T) {
	err := NewValidationError("abc", []OptionViolation{
		{Kind: MissingRequiredOption, Option: "version"},
		{Kind: InvalidEnforcedValue, Option: "region", Value: "mars", Allowed: []string{"us", "eu"}},
	}, "version [REQUIRED]\nregion [optional]")

	assert.True(t, IsValidationError(err))

	msg := err.Error()
	assert.Contains(t, msg, "job execution validation failed:")
	assert.Contains(t, msg, `  - required option "version" is missing`)
	assert.Contains(t, msg, `  - option "region" value "mars"`)
	assert.Contains(t, msg, "version [REQUIRED]")

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "abc", ve.JobID)
	assert.Len(t, ve.Violations, 2)
}

func TestIsWriteDisabled(t *testing.T) {
	assert.True(t, IsWriteDisabled(ErrWriteDisabled))
	assert.True(t, IsWriteDisabled(fmt.Errorf("run_job: %w", ErrWriteDisabled)))
	assert.False(t, IsWriteDisabled(ErrInvalidQuery))
}

func TestClassifiersRejectOtherKinds(t *testing.T) {
	plain := stderrors.New("boom")

	assert.False(t, IsTransportError(plain))
	assert.False(t, IsMappingError(plain))
	assert.False(t, IsValidationError(plain))

	_, ok := AsValidationError(plain)
	assert.False(t, ok)
	_, ok = AsTransportError(plain)
	assert.False(t, ok)
}
