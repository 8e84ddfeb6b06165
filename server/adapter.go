package server

import (
	"context"
	"encoding/json"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
)

// Adapter exposes a server Handler as a direct Go API, bypassing the stdio
// transport. It is used to embed the bridge in a host program or a test.
type Adapter struct {
	handler *Handler
}

// Initialize performs the initialize handshake
func (a *Adapter) Initialize(ctx context.Context, params *schema.InitializeRequestParams) (*schema.InitializeResult, error) {
	if params == nil {
		params = &schema.InitializeRequestParams{}
	}
	req, err := jsonrpc.NewRequest(schema.MethodInitialize, params)
	if err != nil {
		return nil, err
	}

	response := &jsonrpc.Response{}
	a.handler.Serve(ctx, req, response)

	if response.Error != nil {
		return nil, response.Error
	}

	var result schema.InitializeResult
	err = json.Unmarshal(response.Result, &result)
	if err != nil {
		return nil, err
	}

	// Send Initialized notification
	a.handler.OnNotification(ctx, &jsonrpc.Notification{Method: schema.MethodNotificationInitialized})

	return &result, nil
}

// Ping checks liveness
func (a *Adapter) Ping(ctx context.Context) (*schema.PingResult, error) {
	req, err := jsonrpc.NewRequest(schema.MethodPing, &schema.PingRequestParams{})
	if err != nil {
		return nil, err
	}

	response := &jsonrpc.Response{}
	a.handler.Serve(ctx, req, response)

	if response.Error != nil {
		return nil, response.Error
	}

	var result schema.PingResult
	err = json.Unmarshal(response.Result, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// ListTools lists the declared tool
func (a *Adapter) ListTools(ctx context.Context, cursor *string) (*schema.ListToolsResult, error) {
	params := &schema.ListToolsRequestParams{Cursor: cursor}
	req, err := jsonrpc.NewRequest(schema.MethodToolsList, params)
	if err != nil {
		return nil, err
	}

	response := &jsonrpc.Response{}
	a.handler.Serve(ctx, req, response)

	if response.Error != nil {
		return nil, response.Error
	}

	var result schema.ListToolsResult
	err = json.Unmarshal(response.Result, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// CallTool runs the wrapped command
func (a *Adapter) CallTool(ctx context.Context, params *schema.CallToolRequestParams) (*schema.CallToolResult, error) {
	req, err := jsonrpc.NewRequest(schema.MethodToolsCall, params)
	if err != nil {
		return nil, err
	}

	response := &jsonrpc.Response{}
	a.handler.Serve(ctx, req, response)

	if response.Error != nil {
		return nil, response.Error
	}

	var result schema.CallToolResult
	err = json.Unmarshal(response.Result, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// NewAdapter creates a new adapter for the given handler
func NewAdapter(handler *Handler) *Adapter {
	return &Adapter{handler: handler}
}

// AsClient returns a client side view of the server backed by a fresh handler
func (s *Server) AsClient() *Adapter {
	return NewAdapter(s.NewHandler())
}
