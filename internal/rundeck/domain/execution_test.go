package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ehsaniara/rundeck-mcp/pkg/errors"
)

func TestExecutionStatus_IsValid(t *testing.T) {
	for _, s := range []ExecutionStatus{
		StatusRunning, StatusSucceeded, StatusFailed, StatusAborted, StatusTimedOut,
	} {
		assert.True(t, s.IsValid(), string(s))
	}

	assert.False(t, ExecutionStatus("scheduled").IsValid())
	assert.False(t, ExecutionStatus("").IsValid())
	assert.False(t, ExecutionStatus("RUNNING").IsValid())
}

func TestExecution_Completed(t *testing.T) {
	assert.False(t, Execution{Status: StatusRunning}.Completed())
	assert.True(t, Execution{Status: StatusSucceeded}.Completed())
	assert.True(t, Execution{Status: StatusFailed}.Completed())
}

func TestExecutionQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		query   ExecutionQuery
		wantErr bool
	}{
		{"project only", ExecutionQuery{Project: "ops"}, false},
		{"job only", ExecutionQuery{JobID: "abc"}, false},
		{"status filter", ExecutionQuery{Project: "ops", Status: StatusFailed}, false},
		{"neither project nor job", ExecutionQuery{}, true},
		{"bad status", ExecutionQuery{Project: "ops", Status: "exploded"}, true},
		{"negative offset", ExecutionQuery{Project: "ops", Offset: -1}, true},
		{"limit out of range", ExecutionQuery{Project: "ops", Limit: 5000}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, errors.ErrInvalidQuery)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecutionQuery_Params(t *testing.T) {
	q := ExecutionQuery{
		Project:      "ops",
		Status:       StatusFailed,
		User:         "alice",
		RecentFilter: "1d",
		Limit:        20,
		Offset:       40,
	}

	params := q.Params()

	assert.Equal(t, "20", params["max"])
	assert.Equal(t, "40", params["offset"])
	assert.Equal(t, "failed", params["statusFilter"])
	assert.Equal(t, "alice", params["userFilter"])
	assert.Equal(t, "1d", params["recentFilter"])
}

func TestExecutionQuery_ParamsDefaults(t *testing.T) {
	params := ExecutionQuery{Project: "ops"}.Params()

	assert.Equal(t, "100", params["max"])
	assert.Equal(t, "0", params["offset"])
	assert.NotContains(t, params, "statusFilter")
}
