package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"

	"github.com/viant/mcp-exec/command"
)

// ListTools handles the tools/list method
func (h *Handler) ListTools(ctx context.Context, request *jsonrpc.Request) (*schema.ListToolsResult, *jsonrpc.Error) {
	listToolsRequest := &schema.ListToolsRequest{Method: request.Method}
	if len(request.Params) > 0 {
		if err := json.Unmarshal(request.Params, &listToolsRequest.Params); err != nil {
			return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("failed to parse: %v", err), request.Params)
		}
	}
	return &schema.ListToolsResult{Tools: []schema.Tool{h.tool.Tool()}}, nil
}

// CallTool handles the tools/call method
func (h *Handler) CallTool(ctx context.Context, request *jsonrpc.Request) (*schema.CallToolResult, *jsonrpc.Error) {
	callToolRequest := &schema.CallToolRequest{Method: request.Method}
	if len(request.Params) > 0 {
		if err := json.Unmarshal(request.Params, &callToolRequest.Params); err != nil {
			return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("failed to parse: %v", err), request.Params)
		}
	}
	params := &callToolRequest.Params
	if params.Name != h.tool.Name {
		return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("unknown tool: %v", params.Name), request.Params)
	}
	h.state = stateExecuting
	defer func() { h.state = stateReady }()

	args, err := h.tool.BuildArgs(map[string]interface{}(params.Arguments))
	if err != nil {
		return errorResult(err.Error()), nil
	}
	execID := uuid.NewString()
	h.logger.Info().Str("execId", execID).Str("tool", params.Name).Strs("args", args).Msg("calling tool")
	result, err := h.runner.Run(ctx, args)
	if err != nil {
		//failure to spawn is a tool execution error, not a protocol error
		h.logger.Warn().Str("execId", execID).Err(err).Msg("tool failed")
		return errorResult(fmt.Sprintf("Error: %v", err)), nil
	}
	h.logger.Info().Str("execId", execID).
		Int("exitCode", result.ExitCode).
		Bool("timedOut", result.TimedOut).
		Dur("duration", result.Duration).
		Msg("tool finished")
	return toolResult(result), nil
}

// toolResult renders captured command output as a tool call result.
func toolResult(result *command.Result) *schema.CallToolResult {
	var builder strings.Builder
	if result.TimedOut {
		builder.WriteString("Command timed out")
		if result.Stdout != "" {
			builder.WriteString("\n")
			builder.WriteString(result.Stdout)
		}
	} else {
		builder.WriteString(result.Stdout)
	}
	if result.Stderr != "" {
		builder.WriteString("\nSTDERR:\n")
		builder.WriteString(result.Stderr)
	}
	if !result.TimedOut && result.ExitCode != 0 {
		builder.WriteString(fmt.Sprintf("\nExit code: %v", result.ExitCode))
	}
	text := builder.String()
	if text == "" {
		text = "(no output)"
	}
	if result.ExitCode != 0 || result.TimedOut {
		return errorResult(text)
	}
	return textResult(text)
}

// textResult wraps plain text in a tool call result.
func textResult(text string) *schema.CallToolResult {
	return &schema.CallToolResult{
		Content: []schema.CallToolResultContentElem{
			schema.TextContent{Type: "text", Text: text},
		},
	}
}

// errorResult wraps text in a tool call result flagged as an execution error.
func errorResult(text string) *schema.CallToolResult {
	isError := true
	ret := textResult(text)
	ret.IsError = &isError
	return ret
}
