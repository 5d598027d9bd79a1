// Package validation decides whether a job invocation's supplied options are
// acceptable against the job's declared option set, before any write call is
// issued. On success it produces the normalized options mapping; on failure
// it produces a ValidationError carrying the violations and a rendered
// option reference the caller can use to self-correct.
package validation

import (
	"fmt"
	"strings"

	"github.com/ehsaniara/rundeck-mcp/internal/rundeck/domain"
	"github.com/ehsaniara/rundeck-mcp/pkg/errors"
)

// Validate checks supplied against the declared option set.
//
// For each declared option, in declaration order:
//   - absent from supplied: the default is substituted when one exists;
//     otherwise a required option records a MissingRequiredOption violation.
//     A required option with a default therefore never fails.
//   - present in supplied: when the allowed-values set is enforced, the value
//     must be a member (exact string match) or an InvalidEnforcedValue
//     violation is recorded. Suggested sets are never checked.
//
// Supplied keys not declared on the job pass through unchanged; the remote
// end decides what to do with them.
//
// Violations are collected in declaration order of the job's options, so the
// error text is deterministic for a given job definition regardless of the
// supplied map's iteration order.
func Validate(jobID string, declared []domain.JobOption, supplied map[string]string) (map[string]string, error) {
	normalized := make(map[string]string, len(declared)+len(supplied))
	var violations []errors.OptionViolation

	declaredNames := make(map[string]bool, len(declared))
	for _, opt := range declared {
		declaredNames[opt.Name] = true

		value, ok := supplied[opt.Name]
		if !ok {
			if opt.HasDefault() {
				normalized[opt.Name] = *opt.Default
			} else if opt.Required {
				violations = append(violations, errors.OptionViolation{
					Kind:   errors.MissingRequiredOption,
					Option: opt.Name,
				})
			}
			continue
		}

		if opt.Allowed.Enforced() && !opt.Allowed.Contains(value) {
			violations = append(violations, errors.OptionViolation{
				Kind:    errors.InvalidEnforcedValue,
				Option:  opt.Name,
				Value:   value,
				Allowed: opt.Allowed.Values(),
			})
			continue
		}
		normalized[opt.Name] = value
	}

	// unknown keys pass through untouched
	for name, value := range supplied {
		if !declaredNames[name] {
			normalized[name] = value
		}
	}

	if len(violations) > 0 {
		return nil, errors.NewValidationError(jobID, violations, FormatOptions(declared))
	}
	return normalized, nil
}

// FormatOptions renders the declared option set as the user-facing
// diagnostic block, one entry per option in declaration order:
//
//	<name> [REQUIRED|optional (default: '<default>')]
//	    <description>
//	    Allowed values (must be|suggested): '<v1>', '<v2>', ...
//
// The description and allowed-values lines are omitted when absent.
func FormatOptions(declared []domain.JobOption) string {
	if len(declared) == 0 {
		return "This job has no options."
	}

	var lines []string
	for _, opt := range declared {
		marker := "optional"
		if opt.Required && !opt.HasDefault() {
			marker = "REQUIRED"
		}
		if opt.HasDefault() {
			marker += fmt.Sprintf(" (default: '%s')", *opt.Default)
		}
		lines = append(lines, fmt.Sprintf("%s [%s]", opt.Name, marker))

		if opt.Description != nil {
			lines = append(lines, "    "+*opt.Description)
		}

		if !opt.Allowed.IsZero() {
			enforcement := "suggested"
			if opt.Allowed.Enforced() {
				enforcement = "must be"
			}
			quoted := make([]string, len(opt.Allowed.Values()))
			for i, v := range opt.Allowed.Values() {
				quoted[i] = fmt.Sprintf("'%s'", v)
			}
			lines = append(lines, fmt.Sprintf("    Allowed values (%s): %s",
				enforcement, strings.Join(quoted, ", ")))
		}
	}
	return strings.Join(lines, "\n")
}
