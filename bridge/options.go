package bridge

import (
	"fmt"
	"path/filepath"

	"github.com/viant/mcp-exec/toolspec"
)

// Options defines the bridge command line.
type Options struct {
	Args struct {
		Command     string `positional-arg-name:"command" description:"executable to expose as a tool"`
		Description string `positional-arg-name:"description" description:"tool description presented to the model"`
	} `positional-args:"yes"`

	Name         string   `short:"n" long:"name" description:"tool name, defaults to the command base name"`
	PosArgs      []string `long:"pos-arg" description:"positional parameter spec \"name description\", repeatable, order defines argv order"`
	Flags        []string `long:"flag" description:"flag parameter spec \"-token description\" (boolean) or \"-token= description\" (value), repeatable"`
	ExtraArgs    string   `long:"extra-args" description:"extra arguments appended to every invocation"`
	Timeout      int      `short:"t" long:"timeout" description:"command timeout in seconds, 0 means no timeout"`
	Workdir      string   `short:"w" long:"workdir" description:"working directory of the command"`
	Instructions string   `long:"instructions" description:"location of server instructions returned on initialize"`
	LogFile      string   `long:"log" description:"log file, defaults to stderr"`
	Verbose      bool     `short:"v" long:"verbose" description:"enable debug logging"`
}

// Init applies defaults derived from other options.
func (o *Options) Init() {
	if o.Name == "" && o.Args.Command != "" {
		o.Name = filepath.Base(o.Args.Command)
	}
}

// Validate checks that mandatory options are present.
func (o *Options) Validate() error {
	if o.Args.Command == "" {
		return fmt.Errorf("command was empty")
	}
	if o.Args.Description == "" {
		return fmt.Errorf("description was empty")
	}
	return nil
}

// Schema builds the tool schema from the parameter spec options. Positional
// parameters keep their declared order and precede all flags.
func (o *Options) Schema() (*toolspec.Schema, error) {
	var parameters []*toolspec.Parameter
	for _, spec := range o.PosArgs {
		parameter, err := toolspec.ParsePositional(spec)
		if err != nil {
			return nil, err
		}
		parameters = append(parameters, parameter)
	}
	for _, spec := range o.Flags {
		parameter, err := toolspec.ParseFlag(spec)
		if err != nil {
			return nil, err
		}
		parameters = append(parameters, parameter)
	}
	return toolspec.New(o.Name, o.Args.Description, parameters)
}
