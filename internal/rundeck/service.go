// Package rundeck implements the adapter operations over the Rundeck API:
// fetch via the transport client, shape via the mapper, and gate job
// execution behind option validation and the write capability. Every
// operation is request-scoped and stateless; nothing is cached or shared
// between calls.
package rundeck

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ehsaniara/rundeck-mcp/internal/rundeck/client"
	"github.com/ehsaniara/rundeck-mcp/internal/rundeck/domain"
	"github.com/ehsaniara/rundeck-mcp/internal/rundeck/mapper"
	"github.com/ehsaniara/rundeck-mcp/internal/rundeck/output"
	"github.com/ehsaniara/rundeck-mcp/internal/rundeck/validation"
	"github.com/ehsaniara/rundeck-mcp/pkg/errors"
	"github.com/ehsaniara/rundeck-mcp/pkg/logger"
)

// Service exposes the adapter operations. The write capability is fixed at
// construction time and queryable via IsWriteEnabled; RunJob refuses to
// proceed without it regardless of what the tool layer checked.
type Service struct {
	client       *client.Client
	writeEnabled bool
	logger       *logger.Logger
}

// NewService creates a Service around an authenticated client.
func NewService(c *client.Client, writeEnabled bool) *Service {
	return &Service{
		client:       c,
		writeEnabled: writeEnabled,
		logger:       logger.WithField("component", "rundeck-service"),
	}
}

// IsWriteEnabled reports whether mutating operations were granted at
// startup.
func (s *Service) IsWriteEnabled() bool {
	return s.writeEnabled
}

// ListJobs lists the jobs of a project, capped at the query limit.
func (s *Service) ListJobs(ctx context.Context, query domain.JobQuery) (domain.ListResponse[domain.Job], error) {
	var empty domain.ListResponse[domain.Job]
	if err := query.Validate(); err != nil {
		return empty, err
	}

	raw, err := s.client.Get(ctx, "/project/"+query.Project+"/jobs", query.Params())
	if err != nil {
		return empty, err
	}
	jobs, err := mapper.Jobs(raw)
	if err != nil {
		return empty, err
	}
	return domain.NewListResponse(jobs, query.EffectiveLimit()), nil
}

// GetJob fetches a full job definition including its option set.
func (s *Service) GetJob(ctx context.Context, jobID string) (domain.Job, error) {
	if jobID == "" {
		return domain.Job{}, fmt.Errorf("%w: job id is required", errors.ErrInvalidQuery)
	}

	raw, err := s.client.Get(ctx, "/job/"+jobID, nil)
	if err != nil {
		return domain.Job{}, err
	}
	return mapper.Job(raw)
}

// ListExecutions lists executions for a job or a project. The job endpoint
// wins when both filters are set. The server-side paging total is relayed,
// not recomputed.
func (s *Service) ListExecutions(ctx context.Context, query domain.ExecutionQuery) (domain.ListResponse[domain.Execution], error) {
	var empty domain.ListResponse[domain.Execution]
	if err := query.Validate(); err != nil {
		return empty, err
	}

	path := "/project/" + query.Project + "/executions"
	if query.JobID != "" {
		path = "/job/" + query.JobID + "/executions"
	}

	raw, err := s.client.Get(ctx, path, query.Params())
	if err != nil {
		return empty, err
	}
	execs, total, err := mapper.Executions(raw)
	if err != nil {
		return empty, err
	}
	return domain.NewListResponseWithTotal(execs, total, query.EffectiveLimit()), nil
}

// GetExecution fetches a single execution snapshot.
func (s *Service) GetExecution(ctx context.Context, executionID int64) (domain.Execution, error) {
	raw, err := s.client.Get(ctx, "/execution/"+strconv.FormatInt(executionID, 10), nil)
	if err != nil {
		return domain.Execution{}, err
	}
	return mapper.Execution(raw)
}

// GetExecutionOutput fetches the execution log and windows it locally:
// lastLines selects the most recent N entries, maxLines caps the selection
// from the oldest end. Output is returned even while the execution is still
// running; polling again is the caller's concern.
func (s *Service) GetExecutionOutput(ctx context.Context, executionID int64, lastLines, maxLines int) (domain.ExecutionOutput, error) {
	var empty domain.ExecutionOutput
	if lastLines < 0 || maxLines < 0 {
		return empty, fmt.Errorf("%w: last_lines and max_lines must not be negative", errors.ErrInvalidQuery)
	}

	raw, err := s.client.Get(ctx, "/execution/"+strconv.FormatInt(executionID, 10)+"/output", nil)
	if err != nil {
		return empty, err
	}
	out, err := mapper.ExecutionOutput(executionID, raw)
	if err != nil {
		return empty, err
	}
	out.Entries = output.Window(out.Entries, lastLines, maxLines)
	return out, nil
}

// RunJob starts a job. The write capability is checked first, before any
// remote call; then the job definition is fetched and the supplied options
// are validated and normalized. No write call is ever issued for a request
// that fails validation.
func (s *Service) RunJob(ctx context.Context, request domain.JobRunRequest) (domain.Execution, error) {
	var empty domain.Execution
	if !s.writeEnabled {
		return empty, errors.ErrWriteDisabled
	}
	if err := request.Validate(); err != nil {
		return empty, err
	}

	job, err := s.GetJob(ctx, request.JobID)
	if err != nil {
		return empty, err
	}

	normalized, err := validation.Validate(job.ID, job.Options, request.Options)
	if err != nil {
		return empty, err
	}
	request.Options = normalized

	s.logger.Info("running job", "jobID", job.ID, "job", job.Name, "options", len(normalized))

	raw, err := s.client.Post(ctx, "/job/"+request.JobID+"/run", request.Body())
	if err != nil {
		return empty, err
	}
	return mapper.Execution(raw)
}
