package server

import (
	"github.com/rs/zerolog"
	"github.com/viant/mcp-protocol/schema"
)

// Option is a function that configures the server.
type Option func(s *Server) error

// WithImplementation sets the server implementation.
func WithImplementation(implementation schema.Implementation) Option {
	return func(s *Server) error {
		s.info = implementation
		return nil
	}
}

// WithProtocolVersion overrides the advertised protocol version.
func WithProtocolVersion(version string) Option {
	return func(s *Server) error {
		s.protocolVersion = version
		return nil
	}
}

// WithInstructions sets instructions returned from the initialize handshake.
func WithInstructions(instructions string) Option {
	return func(s *Server) error {
		s.instructions = &instructions
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) error {
		s.logger = logger
		return nil
	}
}
