package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ehsaniara/rundeck-mcp/internal/rundeck/domain"
)

func (s *Server) handleListJobs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, err := request.RequireString("project")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	query := domain.JobQuery{
		Project:        project,
		JobFilter:      request.GetString("job_filter", ""),
		JobExactFilter: request.GetString("job_exact_filter", ""),
		GroupPathExact: request.GetString("group_path_exact", ""),
		Tags:           request.GetString("tags", ""),
		Limit:          request.GetInt("limit", 0),
	}
	// empty string is a meaningful group_path ("root level only"), so
	// presence has to be checked rather than defaulted
	args := request.GetArguments()
	if raw, ok := args["group_path"]; ok {
		if gp, ok := raw.(string); ok {
			query.GroupPath = &gp
		}
	}
	if raw, ok := args["scheduled_filter"]; ok {
		if sf, ok := raw.(bool); ok {
			query.ScheduledFilter = &sf
		}
	}

	result, err := s.service.ListJobs(ctx, query)
	if err != nil {
		return toolError(err), nil
	}
	return toolResult(result)
}

func (s *Server) handleGetJob(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jobID, err := request.RequireString("job_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	job, err := s.service.GetJob(ctx, jobID)
	if err != nil {
		return toolError(err), nil
	}
	return toolResult(job)
}

func (s *Server) handleListExecutions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := domain.ExecutionQuery{
		Project:      request.GetString("project", ""),
		JobID:        request.GetString("job_id", ""),
		Status:       domain.ExecutionStatus(request.GetString("status", "")),
		User:         request.GetString("user", ""),
		RecentFilter: request.GetString("recent_filter", ""),
		Limit:        request.GetInt("limit", 0),
		Offset:       request.GetInt("offset", 0),
	}

	result, err := s.service.ListExecutions(ctx, query)
	if err != nil {
		return toolError(err), nil
	}
	return toolResult(result)
}

func (s *Server) handleGetExecution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	executionID, err := requireExecutionID(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	execution, err := s.service.GetExecution(ctx, executionID)
	if err != nil {
		return toolError(err), nil
	}
	return toolResult(execution)
}

func (s *Server) handleGetExecutionOutput(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	executionID, err := requireExecutionID(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := s.service.GetExecutionOutput(ctx, executionID,
		request.GetInt("last_lines", 0),
		request.GetInt("max_lines", 0))
	if err != nil {
		return toolError(err), nil
	}
	return toolResult(out)
}

func (s *Server) handleRunJob(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jobID, err := request.RequireString("job_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	options, err := stringMapArgument(request, "options")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	runRequest := domain.JobRunRequest{
		JobID:      jobID,
		Options:    options,
		LogLevel:   request.GetString("log_level", ""),
		AsUser:     request.GetString("as_user", ""),
		NodeFilter: request.GetString("node_filter", ""),
	}

	execution, err := s.service.RunJob(ctx, runRequest)
	if err != nil {
		return toolError(err), nil
	}
	return toolResult(execution)
}

func requireExecutionID(request mcp.CallToolRequest) (int64, error) {
	id, err := request.RequireInt("execution_id")
	if err != nil {
		return 0, err
	}
	return int64(id), nil
}

// stringMapArgument reads an object argument as a string-to-string map,
// coercing scalar values. Nested values are rejected: Rundeck option values
// are flat strings.
func stringMapArgument(request mcp.CallToolRequest, key string) (map[string]string, error) {
	raw, ok := request.GetArguments()[key]
	if !ok || raw == nil {
		return nil, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("argument %q must be an object of option values", key)
	}

	result := make(map[string]string, len(obj))
	for k, v := range obj {
		switch val := v.(type) {
		case string:
			result[k] = val
		case bool, float64, int, int64:
			result[k] = fmt.Sprintf("%v", val)
		default:
			return nil, fmt.Errorf("option %q must be a string value", k)
		}
	}
	return result, nil
}

func toolResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode tool result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// toolError converts an adapter error into a tool-error result. Error()
// already carries everything the agent needs (validation errors include the
// full option reference, transport errors the status and body).
func toolError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(err.Error())
}
