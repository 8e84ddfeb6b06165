package bridge

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/viant/afs"
	"github.com/viant/mcp-protocol/schema"

	"github.com/viant/mcp-exec/command"
	"github.com/viant/mcp-exec/server"
)

// Version is reported as the server version in the initialize result.
const Version = "0.1"

// Service wires command line options into a runnable MCP server.
type Service struct {
	options *Options
	logger  zerolog.Logger
	server  *server.Server
}

// Stdio returns a stdio transport bound to the service server.
func (s *Service) Stdio(ctx context.Context, options ...server.StdioOption) *server.Stdio {
	return s.server.Stdio(ctx, options...)
}

// New creates a new bridge service. Invalid options, unparseable parameter
// specs and unreadable instructions all fail here, before any protocol
// traffic is exchanged.
func New(ctx context.Context, options *Options) (*Service, error) {
	options.Init()
	if err := options.Validate(); err != nil {
		return nil, err
	}
	logger, err := newLogger(options)
	if err != nil {
		return nil, err
	}
	tool, err := options.Schema()
	if err != nil {
		return nil, err
	}
	runner := newRunner(options, logger)
	serverOptions := []server.Option{
		server.WithImplementation(schema.Implementation{Name: "mcp-exec", Version: Version}),
		server.WithLogger(logger),
	}
	if options.Instructions != "" {
		instructions, err := loadInstructions(ctx, options.Instructions)
		if err != nil {
			return nil, err
		}
		serverOptions = append(serverOptions, server.WithInstructions(instructions))
	}
	srv, err := server.New(tool, runner, serverOptions...)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("tool", tool.Name).
		Str("command", options.Args.Command).
		Int("parameters", len(tool.Parameters)).
		Msg("bridge ready")
	return &Service{options: options, logger: logger, server: srv}, nil
}

func newRunner(options *Options, logger zerolog.Logger) *command.Runner {
	commandOptions := []command.Option{command.WithLogger(logger)}
	if options.ExtraArgs != "" {
		commandOptions = append(commandOptions, command.WithExtraArgs(strings.Fields(options.ExtraArgs)))
	}
	if options.Workdir != "" {
		commandOptions = append(commandOptions, command.WithDir(options.Workdir))
	}
	if options.Timeout > 0 {
		commandOptions = append(commandOptions, command.WithTimeout(time.Duration(options.Timeout)*time.Second))
	}
	return command.New(options.Args.Command, commandOptions...)
}

// loadInstructions reads server instructions from an afs supported location.
func loadInstructions(ctx context.Context, URL string) (string, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return "", fmt.Errorf("failed to load instructions from %v: %w", URL, err)
	}
	return string(data), nil
}

// newLogger builds the bridge logger. Stdout carries the protocol, so logs go
// to stderr unless a log file is configured.
func newLogger(options *Options) (zerolog.Logger, error) {
	var output io.Writer = os.Stderr
	if options.LogFile != "" {
		file, err := os.OpenFile(options.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}
	level := zerolog.InfoLevel
	if options.Verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(output).Level(level).With().Timestamp().Str("app", "mcp-exec").Logger()
	return logger, nil
}
