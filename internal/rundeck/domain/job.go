// Package domain defines the entity types exchanged with the Rundeck API.
// All types are immutable snapshots of remote state: they are created by the
// mapping layer from a single API response and never mutated afterwards.
// Optional fields use pointers so "no value" is explicit and never conflated
// with an empty string or zero.
package domain

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ehsaniara/rundeck-mcp/pkg/errors"
)

// List limit bounds shared by every list-shaped query.
const (
	MinListLimit     = 1
	MaxListLimit     = 1000
	DefaultListLimit = 100
)

// allowedKind tags an AllowedValues union value.
type allowedKind int

const (
	allowedNone allowedKind = iota
	allowedEnforced
	allowedSuggested
)

// AllowedValues is the allowed-values set of a job option, tagged as either
// enforced (supplied values must be members) or suggested (advisory only).
// The zero value means no set is declared. Making this a tagged union keeps
// the invalid state "values present but neither enforced nor suggested"
// unrepresentable.
type AllowedValues struct {
	kind   allowedKind
	values []string
}

// EnforcedValues declares an allowed set whose membership is mandatory.
func EnforcedValues(values ...string) AllowedValues {
	return AllowedValues{kind: allowedEnforced, values: values}
}

// SuggestedValues declares an advisory allowed set; values are never checked.
func SuggestedValues(values ...string) AllowedValues {
	return AllowedValues{kind: allowedSuggested, values: values}
}

// IsZero reports whether no allowed-values set is declared.
func (a AllowedValues) IsZero() bool {
	return a.kind == allowedNone || len(a.values) == 0
}

// Enforced reports whether the set is mandatory and non-empty.
func (a AllowedValues) Enforced() bool {
	return a.kind == allowedEnforced && len(a.values) > 0
}

// Values returns the declared set in declaration order (nil when none).
func (a AllowedValues) Values() []string {
	return a.values
}

// Contains reports exact-string membership of v in the declared set.
func (a AllowedValues) Contains(v string) bool {
	for _, val := range a.values {
		if val == v {
			return true
		}
	}
	return false
}

// MarshalJSON renders the union as null (none) or an object carrying the
// values and whether membership is enforced.
func (a AllowedValues) MarshalJSON() ([]byte, error) {
	if a.IsZero() {
		return []byte("null"), nil
	}
	type wire struct {
		Values   []string `json:"values"`
		Enforced bool     `json:"enforced"`
	}
	return json.Marshal(wire{Values: a.values, Enforced: a.kind == allowedEnforced})
}

// JobOption is one declared option of a job definition. Read-only.
type JobOption struct {
	Name        string        `json:"name"`
	Description *string       `json:"description,omitempty"`
	Required    bool          `json:"required"`
	Default     *string       `json:"default,omitempty"`
	Allowed     AllowedValues `json:"allowed"`
	Secure      bool          `json:"secure,omitempty"`
	Multivalued bool          `json:"multivalued,omitempty"`
	Delimiter   *string       `json:"delimiter,omitempty"`
}

// HasDefault reports whether the option declares a non-empty default value.
func (o JobOption) HasDefault() bool {
	return o.Default != nil && *o.Default != ""
}

// JobReference is the minimal job identity carried inside execution
// responses.
type JobReference struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Group   *string `json:"group,omitempty"`
	Project string  `json:"project"`
}

// Job is a Rundeck job definition snapshot.
type Job struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Group           *string     `json:"group,omitempty"`
	Project         string      `json:"project"`
	Description     *string     `json:"description,omitempty"`
	Scheduled       bool        `json:"scheduled"`
	ScheduleEnabled bool        `json:"schedule_enabled"`
	Enabled         bool        `json:"enabled"`
	AverageDuration *int64      `json:"average_duration_ms,omitempty"`
	Options         []JobOption `json:"options,omitempty"`
}

// JobQuery holds the filters for listing jobs in a project. A request-scoped
// value object; invalid limits are rejected before any remote call.
type JobQuery struct {
	Project         string  `json:"project"`
	GroupPath       *string `json:"group_path,omitempty"` // "" = root only, "*" = all groups
	JobFilter       string  `json:"job_filter,omitempty"`
	JobExactFilter  string  `json:"job_exact_filter,omitempty"`
	GroupPathExact  string  `json:"group_path_exact,omitempty"`
	ScheduledFilter *bool   `json:"scheduled_filter,omitempty"`
	Tags            string  `json:"tags,omitempty"`
	Limit           int     `json:"limit,omitempty"` // 0 = DefaultListLimit
}

// Validate checks the query bounds. A zero limit means "use the default".
func (q JobQuery) Validate() error {
	if q.Project == "" {
		return fmt.Errorf("%w: project is required", errors.ErrInvalidQuery)
	}
	return validateLimit(q.Limit)
}

// EffectiveLimit resolves the zero value to the default limit.
func (q JobQuery) EffectiveLimit() int {
	if q.Limit == 0 {
		return DefaultListLimit
	}
	return q.Limit
}

// Params converts the query to Rundeck API query parameters.
func (q JobQuery) Params() map[string]string {
	params := map[string]string{
		"max": strconv.Itoa(q.EffectiveLimit()),
	}
	if q.GroupPath != nil {
		params["groupPath"] = *q.GroupPath
	}
	if q.JobFilter != "" {
		params["jobFilter"] = q.JobFilter
	}
	if q.JobExactFilter != "" {
		params["jobExactFilter"] = q.JobExactFilter
	}
	if q.GroupPathExact != "" {
		params["groupPathExact"] = q.GroupPathExact
	}
	if q.ScheduledFilter != nil {
		params["scheduledFilter"] = strconv.FormatBool(*q.ScheduledFilter)
	}
	if q.Tags != "" {
		params["tags"] = q.Tags
	}
	return params
}

// LogLevel values accepted by Rundeck for an execution.
var runLogLevels = map[string]bool{
	"DEBUG":   true,
	"VERBOSE": true,
	"INFO":    true,
	"WARN":    true,
	"ERROR":   true,
}

// JobRunRequest is a fully validated request to start a job. It is only
// constructed by the service after option validation succeeded and the write
// capability was confirmed.
type JobRunRequest struct {
	JobID      string            `json:"job_id"`
	Options    map[string]string `json:"options,omitempty"`
	LogLevel   string            `json:"log_level,omitempty"`
	AsUser     string            `json:"as_user,omitempty"`
	NodeFilter string            `json:"node_filter,omitempty"`
}

// Validate checks the request fields that do not depend on the job
// definition (option validation happens against the fetched job).
func (r JobRunRequest) Validate() error {
	if r.JobID == "" {
		return fmt.Errorf("%w: job id is required", errors.ErrInvalidQuery)
	}
	if r.LogLevel != "" && !runLogLevels[r.LogLevel] {
		return fmt.Errorf("%w: log level %q is not one of DEBUG, VERBOSE, INFO, WARN, ERROR",
			errors.ErrInvalidQuery, r.LogLevel)
	}
	return nil
}

// Body converts the request to the POST body for /job/<id>/run.
func (r JobRunRequest) Body() map[string]any {
	body := map[string]any{}
	if len(r.Options) > 0 {
		body["options"] = r.Options
	}
	if r.LogLevel != "" {
		body["loglevel"] = r.LogLevel
	}
	if r.AsUser != "" {
		body["asUser"] = r.AsUser
	}
	if r.NodeFilter != "" {
		body["filter"] = r.NodeFilter
	}
	return body
}

func validateLimit(limit int) error {
	if limit == 0 {
		return nil
	}
	if limit < MinListLimit || limit > MaxListLimit {
		return fmt.Errorf("%w: limit must be between %d and %d, got %d",
			errors.ErrInvalidQuery, MinListLimit, MaxListLimit, limit)
	}
	return nil
}
