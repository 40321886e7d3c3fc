package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/fin-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/fin-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/fin-atlas/pkg/services/config"
	"github.com/de-tools/fin-atlas/pkg/services/ingest"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Config   config.AppConfig
	Decoders ingest.Registry
	Output   io.Writer
	// Open overrides how sources are opened. Defaults to files, S3 and SQL.
	Open     commands.LoaderFunc
	// Profiles overrides how the profile registry is loaded.
	Profiles commands.ProfilesFunc
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Decoders == nil {
		opts.Decoders = ingest.DefaultRegistry()
	}
	if opts.Config.DefaultProfile == "" {
		opts.Config.DefaultProfile = config.DefaultProfile
	}
	if opts.Open == nil {
		opts.Open = OpenSource(opts.Decoders, opts.Config)
	}
	if opts.Profiles == nil {
		opts.Profiles = config.NewRegistry
	}

	cli := &CLI{}
	cli.rootCmd = newRootCmd(opts)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args, mainly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func newRootCmd(opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fin-atlas",
		Short:         "Financial health assessment for small business ledgers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(opts.Output)

	table := export.NewReporter(opts.Output)
	reporters := map[string]commands.Reporter{
		commands.FormatTable: table,
		commands.FormatText:  NewReporter(opts.Output),
	}

	cmd.AddCommand(commands.NewAssessCmd(opts.Open, opts.Profiles, reporters, opts.Output, opts.Config))
	cmd.AddCommand(commands.NewPreviewCmd(opts.Open, table, opts.Output))
	cmd.AddCommand(commands.NewProfilesCmd(opts.Profiles, opts.Output, opts.Config.ProfilesPath))

	return cmd
}
