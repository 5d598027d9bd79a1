package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool definitions. Each tool maps 1:1 to one adapter operation; the input
// schemas mirror the domain query types.

func listJobsTool() mcp.Tool {
	return mcp.NewTool("list_jobs",
		mcp.WithDescription("List jobs in a Rundeck project with optional filtering. "+
			"Returns jobs with their IDs for use in get_job/run_job."),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project name"),
		),
		mcp.WithString("group_path",
			mcp.Description("Filter by group path. Use '*' for all groups, '' for root level only."),
		),
		mcp.WithString("job_filter",
			mcp.Description("Filter by job name (substring match)"),
		),
		mcp.WithString("job_exact_filter",
			mcp.Description("Filter by exact job name"),
		),
		mcp.WithString("group_path_exact",
			mcp.Description("Filter by exact group path"),
		),
		mcp.WithBoolean("scheduled_filter",
			mcp.Description("Only scheduled jobs (true) or only non-scheduled (false)"),
		),
		mcp.WithString("tags",
			mcp.Description("Filter by tags (comma-separated)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (1-1000, default 100)"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

func getJobTool() mcp.Tool {
	return mcp.NewTool("get_job",
		mcp.WithDescription("Get a job definition including all its options, defaults, "+
			"allowed values and whether they are required. Use before run_job."),
		mcp.WithString("job_id",
			mcp.Required(),
			mcp.Description("The job UUID"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

func listExecutionsTool() mcp.Tool {
	return mcp.NewTool("list_executions",
		mcp.WithDescription("List job executions filtered by project or job, most recent first."),
		mcp.WithString("project",
			mcp.Description("Filter by project name (required unless job_id is set)"),
		),
		mcp.WithString("job_id",
			mcp.Description("Filter by job UUID (takes precedence over project)"),
		),
		mcp.WithString("status",
			mcp.Description("Filter by execution status"),
			mcp.Enum("running", "succeeded", "failed", "aborted", "timedout"),
		),
		mcp.WithString("user",
			mcp.Description("Filter by the user who started the execution"),
		),
		mcp.WithString("recent_filter",
			mcp.Description("Filter by recent time period (e.g. '1h', '1d', '1w')"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (1-1000, default 100)"),
		),
		mcp.WithNumber("offset",
			mcp.Description("Offset for pagination"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

func getExecutionTool() mcp.Tool {
	return mcp.NewTool("get_execution",
		mcp.WithDescription("Get a single execution: status, timing and the arguments used."),
		mcp.WithNumber("execution_id",
			mcp.Required(),
			mcp.Description("The execution ID"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

func getExecutionOutputTool() mcp.Tool {
	return mcp.NewTool("get_execution_output",
		mcp.WithDescription("Get log output from an execution. For running executions the "+
			"'completed' field is false; poll again for more output."),
		mcp.WithNumber("execution_id",
			mcp.Required(),
			mcp.Description("The execution ID"),
		),
		mcp.WithNumber("last_lines",
			mcp.Description("Return only the most recent N log entries (0 = all available)"),
		),
		mcp.WithNumber("max_lines",
			mcp.Description("Hard cap on entries returned, keeping the most recent (0 = no cap)"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

func runJobTool() mcp.Tool {
	return mcp.NewTool("run_job",
		mcp.WithDescription("Execute a Rundeck job. Options are validated against the job "+
			"definition before anything is started: required options must be provided (or "+
			"have defaults) and enforced options must use an allowed value."),
		mcp.WithString("job_id",
			mcp.Required(),
			mcp.Description("The job UUID to execute"),
		),
		mcp.WithObject("options",
			mcp.Description("Job options as key-value pairs (e.g. {\"version\": \"1.2.3\"})"),
		),
		mcp.WithString("log_level",
			mcp.Description("Log level for the execution"),
			mcp.Enum("DEBUG", "VERBOSE", "INFO", "WARN", "ERROR"),
		),
		mcp.WithString("as_user",
			mcp.Description("Run the job as this user (requires 'runAs' permission)"),
		),
		mcp.WithString("node_filter",
			mcp.Description("Override the node filter for this execution"),
		),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(false),
	)
}
