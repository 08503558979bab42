// Command docaggregator collects per-project documentation from git branches
// or local directories into a single MkDocs site.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	derrors "git.home.luguber.info/inful/docaggregator/internal/foundation/errors"
	"git.home.luguber.info/inful/docaggregator/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// run parses args, executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("docaggregator"),
		kong.Description("Aggregate project documentation into a single MkDocs site."),
		kong.Vars{"version": version.String("docaggregator")},
		kong.UsageOnError(),
		kong.Writers(os.Stdout, stderr),
	)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	if _, err := parser.Parse(args); err != nil {
		_, _ = fmt.Fprintf(stderr, "docaggregator: %v\n", err)
		return 2
	}
	err = cli.Run(ctx)
	return derrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).Handle(err)
}
