package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/viant/jsonrpc"
)

// maxFrameSize bounds a single newline-delimited JSON-RPC frame.
const maxFrameSize = 10 * 1024 * 1024

// envelope is the raw wire form of an incoming message. The id is kept as
// raw bytes so that it can be echoed back untouched.
type envelope struct {
	Jsonrpc string          `json:"jsonrpc"`
	Id      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// reply is the raw wire form of an outgoing response.
type reply struct {
	Jsonrpc string          `json:"jsonrpc"`
	Id      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *jsonrpc.Error  `json:"error,omitempty"`
}

// Stdio serves the protocol over newline-delimited JSON frames, one message
// at a time.
type Stdio struct {
	ctx     context.Context
	handler *Handler
	input   io.Reader
	output  io.Writer
}

// StdioOption is a function that configures the stdio transport.
type StdioOption func(s *Stdio)

// WithInput overrides the input stream, stdin by default.
func WithInput(input io.Reader) StdioOption {
	return func(s *Stdio) {
		s.input = input
	}
}

// WithOutput overrides the output stream, stdout by default.
func WithOutput(output io.Writer) StdioOption {
	return func(s *Stdio) {
		s.output = output
	}
}

// Stdio returns a stdio transport bound to a fresh handler
func (s *Server) Stdio(ctx context.Context, options ...StdioOption) *Stdio {
	ret := &Stdio{
		ctx:     ctx,
		handler: s.NewHandler(),
		input:   os.Stdin,
		output:  os.Stdout,
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// ListenAndServe reads frames until end of input, dispatching each message
// in turn. It returns nil on a clean shutdown and an error when the stream
// is deemed desynchronized.
func (t *Stdio) ListenAndServe() error {
	scanner := bufio.NewScanner(t.input)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFrameSize)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		t.serve(line)
		if err := t.handler.Err(); err != nil {
			t.handler.logger.Error().Err(err).Msg("terminating")
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	t.handler.logger.Debug().Msg("end of input")
	return nil
}

// serve decodes and dispatches a single frame.
func (t *Stdio) serve(line []byte) {
	var env envelope
	if err := json.Unmarshal(line, &env); err != nil {
		t.handler.logger.Warn().Err(err).Msg("failed to parse frame")
		t.write(nil, nil, jsonrpc.NewParsingError(fmt.Sprintf("failed to parse message: %v", err), nil))
		t.handler.strike()
		return
	}
	if env.Method == "" {
		// either a stray response or a request without a method
		t.write(env.Id, nil, jsonrpc.NewInvalidRequest("method is required", nil))
		t.handler.strike()
		return
	}
	if len(env.Id) == 0 {
		if env.Jsonrpc != jsonrpc.Version {
			t.handler.logger.Debug().Str("method", env.Method).Msg("dropping notification with invalid JSON-RPC version")
			return
		}
		t.handler.OnNotification(t.ctx, &jsonrpc.Notification{Method: env.Method, Params: env.Params})
		return
	}
	request := &jsonrpc.Request{Jsonrpc: env.Jsonrpc, Method: env.Method, Params: env.Params}
	response := &jsonrpc.Response{Jsonrpc: jsonrpc.Version}
	t.handler.Serve(t.ctx, request, response)
	t.write(env.Id, json.RawMessage(response.Result), response.Error)
}

// write emits a single response frame followed by a newline.
func (t *Stdio) write(id json.RawMessage, result json.RawMessage, rpcError *jsonrpc.Error) {
	data, err := json.Marshal(&reply{Jsonrpc: jsonrpc.Version, Id: id, Result: result, Error: rpcError})
	if err != nil {
		t.handler.logger.Error().Err(err).Msg("failed to marshal response")
		return
	}
	data = append(data, '\n')
	if _, err := t.output.Write(data); err != nil {
		t.handler.logger.Error().Err(err).Msg("failed to write response")
	}
}
