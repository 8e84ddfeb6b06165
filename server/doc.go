// Package server implements a single-tool MCP server over stdio.
//
// It dispatches JSON-RPC 2.0 requests decoded from newline-delimited frames
// to the protocol methods the bridge supports:
//   - initialize / ping
//   - tools/list
//   - tools/call
//
// The handler tracks the connection lifecycle (uninitialized, ready,
// executing, terminated) and gives up after three consecutive malformed
// messages. Requests are processed strictly in arrival order; stdout carries
// protocol frames only.
//
// Callers typically construct a server via `server.New` and run the stdio
// loop:
//
//	s, _ := server.New(tool, runner, server.WithLogger(logger))
//	log.Fatal(s.Stdio(ctx).ListenAndServe())
package server
