package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
)

// state tracks the protocol lifecycle of a connection.
type state int

const (
	stateUninitialized state = iota
	stateReady
	stateExecuting
	stateTerminated
)

// String returns the state name.
func (s state) String() string {
	switch s {
	case stateUninitialized:
		return "uninitialized"
	case stateReady:
		return "ready"
	case stateExecuting:
		return "executing"
	case stateTerminated:
		return "terminated"
	}
	return "unknown"
}

// maxStrikes bounds how many consecutive malformed messages the server
// tolerates before it assumes the stream is desynchronized.
const maxStrikes = 3

// Handler represents handler state for a single connection
type Handler struct {
	*Server
	state       state
	strikes     int
	Initialized bool
	err         error
}

// Serve handles incoming JSON-RPC requests
func (h *Handler) Serve(ctx context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	// Check for valid JSONRPC version
	if jsonrpc.Version != request.Jsonrpc {
		response.Error = jsonrpc.NewInvalidRequest("invalid JSON-RPC version", nil)
		h.strike()
		return
	}
	if h.err != nil {
		response.Error = jsonrpc.NewInternalError(h.err.Error(), nil)
		return
	}
	switch request.Method {
	case schema.MethodInitialize, schema.MethodPing:
	case schema.MethodToolsList, schema.MethodToolsCall:
		if h.state == stateUninitialized {
			h.strikes = 0
			response.Error = jsonrpc.NewInvalidRequest("server not initialized", nil)
			return
		}
	default:
		response.Error = jsonrpc.NewMethodNotFound(fmt.Sprintf("method: %v not found", request.Method), request.Params)
		h.strike()
		return
	}
	h.strikes = 0
	h.logger.Debug().Str("method", request.Method).Stringer("state", h.state).Msg("dispatching request")

	switch request.Method {
	case schema.MethodInitialize:
		result, err := h.Initialize(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodPing:
		result, err := h.Ping(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodToolsList:
		result, err := h.ListTools(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodToolsCall:
		result, err := h.CallTool(ctx, request)
		h.setResponse(response, result, err)
	}
}

// strike records a malformed message; the third consecutive one is fatal.
func (h *Handler) strike() {
	h.strikes++
	h.logger.Warn().Int("strikes", h.strikes).Msg("malformed message")
	if h.strikes >= maxStrikes {
		h.err = fmt.Errorf("protocol desynchronization: %v consecutive malformed messages", h.strikes)
		h.state = stateTerminated
	}
}

// Err returns the desynchronization error once the strike limit is reached.
func (h *Handler) Err() error {
	return h.err
}

func (h *Handler) setResponse(response *jsonrpc.Response, result interface{}, rpcError *jsonrpc.Error) {
	if rpcError != nil {
		response.Error = rpcError
		return
	}
	var err error
	response.Result, err = json.Marshal(result)
	if err != nil {
		response.Error = jsonrpc.NewInternalError(err.Error(), []byte{})
	}
}

// OnNotification handles incoming JSON-RPC notifications
func (h *Handler) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {
	switch notification.Method {
	case schema.MethodNotificationInitialized:
		h.Initialized = true
		h.logger.Debug().Msg("client initialized")
	case schema.MethodNotificationCancel:
		// Calls run to completion before the next frame is read, so there
		// is nothing in flight to cancel by the time this arrives.
		h.logger.Debug().Msg("ignoring cancellation")
	default:
		h.logger.Debug().Str("method", notification.Method).Msg("ignoring notification")
	}
}
