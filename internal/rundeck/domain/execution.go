package domain

import (
	"fmt"
	"time"

	"github.com/ehsaniara/rundeck-mcp/pkg/errors"
)

// ExecutionStatus is the closed set of execution states surfaced by the
// adapter. Anything else coming off the wire is a mapping failure, not a
// silently forwarded string.
type ExecutionStatus string

const (
	StatusRunning   ExecutionStatus = "running"
	StatusSucceeded ExecutionStatus = "succeeded"
	StatusFailed    ExecutionStatus = "failed"
	StatusAborted   ExecutionStatus = "aborted"
	StatusTimedOut  ExecutionStatus = "timedout"
)

// IsValid reports whether s is a member of the closed status enumeration.
func (s ExecutionStatus) IsValid() bool {
	switch s {
	case StatusRunning, StatusSucceeded, StatusFailed, StatusAborted, StatusTimedOut:
		return true
	}
	return false
}

// Execution is a snapshot of a single job run. End timestamp, duration and a
// final status are absent while the execution is still running.
type Execution struct {
	ID         int64           `json:"id"`
	Status     ExecutionStatus `json:"status"`
	Project    string          `json:"project"`
	Job        *JobReference   `json:"job,omitempty"` // nil for adhoc executions
	User       string          `json:"user"`
	StartedAt  time.Time       `json:"started_at"`
	EndedAt    *time.Time      `json:"ended_at,omitempty"`
	DurationMS *int64          `json:"duration_ms,omitempty"`
	ArgString  *string         `json:"argstring,omitempty"`
}

// Completed reports whether the execution reached a terminal status.
func (e Execution) Completed() bool {
	return e.Status != StatusRunning
}

// LogEntry is one chronological log line of an execution.
type LogEntry struct {
	Time         string  `json:"time"`
	AbsoluteTime *string `json:"absolute_time,omitempty"`
	Level        string  `json:"level"`
	Message      string  `json:"message"`
	Node         *string `json:"node,omitempty"`
	Step         *string `json:"step,omitempty"`
	User         *string `json:"user,omitempty"`
}

// ExecutionOutput is a window over the chronological log of an execution.
// Entries are append-only from the remote source and never reordered.
type ExecutionOutput struct {
	ExecutionID   int64      `json:"execution_id"`
	Completed     bool       `json:"completed"`
	ExecState     *string    `json:"exec_state,omitempty"`
	ExecDuration  int64      `json:"exec_duration_ms"`
	PercentLoaded float64    `json:"percent_loaded"` // fraction in [0,1]
	Offset        int64      `json:"offset"`
	HasMoreOutput bool       `json:"has_more_output"`
	Entries       []LogEntry `json:"entries"`
}

// ExecutionQuery holds the filters for listing executions. Either Project or
// JobID must be set; JobID wins when both are present.
type ExecutionQuery struct {
	Project      string          `json:"project,omitempty"`
	JobID        string          `json:"job_id,omitempty"`
	Status       ExecutionStatus `json:"status,omitempty"`
	User         string          `json:"user,omitempty"`
	RecentFilter string          `json:"recent_filter,omitempty"` // e.g. "1h", "1d"
	Limit        int             `json:"limit,omitempty"`         // 0 = DefaultListLimit
	Offset       int             `json:"offset,omitempty"`
}

// Validate checks the query bounds before any remote call.
func (q ExecutionQuery) Validate() error {
	if q.Project == "" && q.JobID == "" {
		return fmt.Errorf("%w: either project or job_id must be provided", errors.ErrInvalidQuery)
	}
	if q.Status != "" && !q.Status.IsValid() {
		return fmt.Errorf("%w: status %q is not one of running, succeeded, failed, aborted, timedout",
			errors.ErrInvalidQuery, q.Status)
	}
	if q.Offset < 0 {
		return fmt.Errorf("%w: offset must not be negative", errors.ErrInvalidQuery)
	}
	return validateLimit(q.Limit)
}

// EffectiveLimit resolves the zero value to the default limit.
func (q ExecutionQuery) EffectiveLimit() int {
	if q.Limit == 0 {
		return DefaultListLimit
	}
	return q.Limit
}

// Params converts the query to Rundeck API query parameters.
func (q ExecutionQuery) Params() map[string]string {
	params := map[string]string{
		"max":    fmt.Sprintf("%d", q.EffectiveLimit()),
		"offset": fmt.Sprintf("%d", q.Offset),
	}
	if q.Status != "" {
		params["statusFilter"] = string(q.Status)
	}
	if q.User != "" {
		params["userFilter"] = q.User
	}
	if q.RecentFilter != "" {
		params["recentFilter"] = q.RecentFilter
	}
	return params
}
