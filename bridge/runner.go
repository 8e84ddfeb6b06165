package bridge

import (
	"context"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Run parses command line arguments and serves the bridge over stdio until
// the client closes its end of the pipe.
func Run(args []string) error {
	options := &Options{}
	rest, err := flags.ParseArgs(options, args)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %v", rest)
	}
	ctx := context.Background()
	service, err := New(ctx, options)
	if err != nil {
		return err
	}
	return service.Stdio(ctx).ListenAndServe()
}
