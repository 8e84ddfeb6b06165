package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/mcp-protocol/schema"

	"github.com/viant/mcp-exec/server"
)

func requirePosix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX environment")
	}
}

func TestNew(t *testing.T) {
	options := &Options{PosArgs: []string{"text Text to print"}}
	options.Args.Command = "echo"
	options.Args.Description = "Print text to standard output"
	service, err := New(context.Background(), options)
	if !assert.Nil(t, err) {
		return
	}
	assert.NotNil(t, service)
	assert.Equal(t, "echo", options.Name)
}

func TestNew_Errors(t *testing.T) {
	dir := t.TempDir()
	testCases := []struct {
		description string
		options     func() *Options
	}{
		{
			description: "missing description",
			options: func() *Options {
				options := &Options{}
				options.Args.Command = "echo"
				return options
			},
		},
		{
			description: "invalid flag spec",
			options: func() *Options {
				options := &Options{Flags: []string{"-verbose"}}
				options.Args.Command = "echo"
				options.Args.Description = "Print text"
				return options
			},
		},
		{
			description: "unreadable instructions",
			options: func() *Options {
				options := &Options{Instructions: filepath.Join(dir, "missing.txt")}
				options.Args.Command = "echo"
				options.Args.Description = "Print text"
				return options
			},
		},
		{
			description: "unopenable log file",
			options: func() *Options {
				options := &Options{LogFile: filepath.Join(dir, "no-such-dir", "bridge.log")}
				options.Args.Command = "echo"
				options.Args.Description = "Print text"
				return options
			},
		},
	}
	for _, testCase := range testCases {
		_, err := New(context.Background(), testCase.options())
		assert.NotNil(t, err, testCase.description)
	}
}

type stdioReply struct {
	Id     json.RawMessage `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  json.RawMessage `json:"error"`
}

func TestService_Stdio(t *testing.T) {
	requirePosix(t)
	dir := t.TempDir()
	instructions := filepath.Join(dir, "instructions.txt")
	if !assert.Nil(t, os.WriteFile(instructions, []byte("Use the echo tool to print text."), 0o644)) {
		return
	}
	options := &Options{
		PosArgs:      []string{"text Text to print"},
		Instructions: instructions,
		LogFile:      filepath.Join(dir, "bridge.log"),
		Verbose:      true,
	}
	options.Args.Command = "echo"
	options.Args.Description = "Print text to standard output"

	ctx := context.Background()
	service, err := New(ctx, options)
	if !assert.Nil(t, err) {
		return
	}

	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","clientInfo":{"name":"test","version":"0.1"},"capabilities":{}}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"echo","arguments":{"text":"hello"}}}`,
	}, "\n") + "\n"
	output := new(bytes.Buffer)
	loop := service.Stdio(ctx, server.WithInput(strings.NewReader(input)), server.WithOutput(output))
	if !assert.Nil(t, loop.ListenAndServe()) {
		return
	}

	var replies []*stdioReply
	for _, line := range strings.Split(strings.TrimSpace(output.String()), "\n") {
		reply := &stdioReply{}
		if !assert.Nil(t, json.Unmarshal([]byte(line), reply), line) {
			return
		}
		assert.Equal(t, 0, len(reply.Error), line)
		replies = append(replies, reply)
	}
	if !assert.Equal(t, 3, len(replies)) {
		return
	}

	initResult := schema.InitializeResult{}
	if !assert.Nil(t, json.Unmarshal(replies[0].Result, &initResult)) {
		return
	}
	assert.Equal(t, "mcp-exec", initResult.ServerInfo.Name)
	assert.Equal(t, Version, initResult.ServerInfo.Version)
	if assert.NotNil(t, initResult.Instructions) {
		assert.Equal(t, "Use the echo tool to print text.", *initResult.Instructions)
	}

	listResult := schema.ListToolsResult{}
	if !assert.Nil(t, json.Unmarshal(replies[1].Result, &listResult)) {
		return
	}
	if assert.Equal(t, 1, len(listResult.Tools)) {
		assert.Equal(t, "echo", listResult.Tools[0].Name)
	}

	callResult := schema.CallToolResult{}
	if !assert.Nil(t, json.Unmarshal(replies[2].Result, &callResult)) {
		return
	}
	if assert.Equal(t, 1, len(callResult.Content)) {
		assert.Equal(t, "hello\n", callResult.Content[0].(map[string]interface{})["text"])
	}
	assert.Nil(t, callResult.IsError)

	data, err := os.ReadFile(options.LogFile)
	if assert.Nil(t, err) {
		assert.Contains(t, string(data), "bridge ready")
	}
}

func TestRun_InvalidArguments(t *testing.T) {
	testCases := []struct {
		description string
		args        []string
	}{
		{
			description: "unknown option",
			args:        []string{"echo", "Print text", "--no-such-option"},
		},
		{
			description: "missing positionals",
			args:        []string{},
		},
		{
			description: "leftover positionals",
			args:        []string{"echo", "Print text", "surplus"},
		},
		{
			description: "invalid parameter spec",
			args:        []string{"echo", "Print text", "--pos-arg", "text"},
		},
	}
	for _, testCase := range testCases {
		err := Run(testCase.args)
		assert.NotNil(t, err, testCase.description)
	}
}
