package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
)

// Initialize handles the initialize method
func (h *Handler) Initialize(ctx context.Context, request *jsonrpc.Request) (*schema.InitializeResult, *jsonrpc.Error) {
	initRequest := schema.InitializeRequest{Method: schema.MethodInitialize}
	if len(request.Params) > 0 {
		if err := json.Unmarshal(request.Params, &initRequest.Params); err != nil {
			return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("failed to parse %v", err), request.Params)
		}
	}
	if h.state == stateUninitialized {
		h.state = stateReady
	}
	h.logger.Debug().
		Str("client", initRequest.Params.ClientInfo.Name).
		Str("clientProtocolVersion", initRequest.Params.ProtocolVersion).
		Msg("initialize")
	result := schema.InitializeResult{
		ProtocolVersion: h.protocolVersion,
		ServerInfo:      h.info,
		Capabilities: schema.ServerCapabilities{
			Tools: &schema.ServerCapabilitiesTools{},
		},
		Instructions: h.instructions,
	}
	return &result, nil
}

// Ping handles the ping method
func (h *Handler) Ping(ctx context.Context, request *jsonrpc.Request) (*schema.PingResult, *jsonrpc.Error) {
	result := schema.PingResult{}
	return &result, nil
}
