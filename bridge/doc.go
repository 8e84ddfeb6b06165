// Package bridge assembles the mcp-exec binary from its command line.
//
// The bridge exposes a single CLI command as an MCP tool over stdio. The
// command, its description and its parameters are declared on the command
// line; the bridge derives the tool schema from them, answers the MCP
// handshake and maps each tools/call request onto one execution of the
// command. Most end-users interact with the compiled `mcp-exec` binary, but
// the wiring lives in this package so it can be embedded and tested.
package bridge
