package server

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/viant/mcp-protocol/schema"

	"github.com/viant/mcp-exec/command"
	"github.com/viant/mcp-exec/toolspec"
)

// Server represents a single tool MCP protocol handler
type Server struct {
	info            schema.Implementation
	instructions    *string
	protocolVersion string

	tool   *toolspec.Schema
	runner *command.Runner
	logger zerolog.Logger
}

// NewHandler creates a new handler instance with a fresh protocol state
func (s *Server) NewHandler() *Handler {
	return &Handler{Server: s, state: stateUninitialized}
}

// New creates a new Server instance
func New(tool *toolspec.Schema, runner *command.Runner, options ...Option) (*Server, error) {
	// initialize server
	s := &Server{
		info: schema.Implementation{
			Name:    "mcp-exec",
			Version: "0.1",
		},
		protocolVersion: schema.LatestProtocolVersion,
		tool:            tool,
		runner:          runner,
		logger:          zerolog.Nop(),
	}
	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	if s.tool == nil {
		return nil, errors.New("no tool schema specified")
	}
	if s.runner == nil {
		return nil, errors.New("no command runner specified")
	}
	return s, nil
}
