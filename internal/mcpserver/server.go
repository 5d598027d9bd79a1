// Package mcpserver binds the Rundeck adapter operations into Model Context
// Protocol tools. Read tools are always registered; run_job is only
// registered when the write capability was granted (the service re-checks
// that capability on every call, so the registration gate is not the only
// line of defense).
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ehsaniara/rundeck-mcp/internal/rundeck"
	"github.com/ehsaniara/rundeck-mcp/pkg/logger"
	"github.com/ehsaniara/rundeck-mcp/pkg/version"
)

const serverName = "Rundeck MCP Server"

const serverInstructions = `When the user asks about Rundeck jobs or executions, use the available tools
to query the Rundeck API.

When running a job with options:
1. First use get_job to retrieve the job definition and see available options
2. Provide all required options that don't have defaults
3. For options with an enforced allowed-values list, use only values from the list

If run_job rejects the request, the error message lists every option with its
required/optional marker, default and allowed values; correct the options and
retry.

READ operations are safe to use. WRITE operations (run_job) trigger actual job
executions in your environment. Always confirm with the user before running
jobs, especially in production environments.`

// Server wires the adapter service into an MCP server over stdio.
type Server struct {
	service *rundeck.Service
	mcp     *server.MCPServer
	logger  *logger.Logger
}

// New creates the MCP server and registers the tool catalogue.
func New(service *rundeck.Service) *Server {
	s := &Server{
		service: service,
		logger:  logger.WithField("component", "mcpserver"),
	}

	s.mcp = server.NewMCPServer(
		serverName,
		version.Version,
		server.WithInstructions(serverInstructions),
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(listJobsTool(), s.handleListJobs)
	s.mcp.AddTool(getJobTool(), s.handleGetJob)
	s.mcp.AddTool(listExecutionsTool(), s.handleListExecutions)
	s.mcp.AddTool(getExecutionTool(), s.handleGetExecution)
	s.mcp.AddTool(getExecutionOutputTool(), s.handleGetExecutionOutput)

	if s.service.IsWriteEnabled() {
		s.mcp.AddTool(runJobTool(), s.handleRunJob)
		s.logger.Warn("write tools enabled: run_job can trigger real job executions")
	} else {
		s.logger.Info("write tools disabled: run_job is not registered")
	}
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving MCP over stdio", "version", version.Version)
	return server.ServeStdio(s.mcp)
}
