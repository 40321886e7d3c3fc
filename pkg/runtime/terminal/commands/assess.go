package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/de-tools/fin-atlas/pkg/models/api"
	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/de-tools/fin-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/fin-atlas/pkg/services/assessment"
	"github.com/de-tools/fin-atlas/pkg/services/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const (
	FormatTable = "table"
	FormatText  = "text"
	FormatJSON  = "json"
)

// Reporter renders a report to the terminal.
type Reporter interface {
	Handle(report *domain.Report) error
}

// ProfilesFunc loads the profile registry from an ini file; an empty path
// yields the built-in default profile only.
type ProfilesFunc func(path string) (config.Registry, error)

type AssessCmd struct {
	source       sourceFlags
	hints        domain.ColumnHints
	profile      string
	profilesPath string
	format       string

	open      LoaderFunc
	profiles  ProfilesFunc
	reporters map[string]Reporter
	output    io.Writer
}

func NewAssessCmd(
	open LoaderFunc,
	profiles ProfilesFunc,
	reporters map[string]Reporter,
	output io.Writer,
	defaults config.AppConfig,
) *cobra.Command {
	ac := &AssessCmd{open: open, profiles: profiles, reporters: reporters, output: output}
	cmd := &cobra.Command{
		Use:   "assess [source]",
		Short: "Score the financial health of a ledger",
		Long: "Score the financial health of a ledger read from a CSV/XLSX file, " +
			"an s3://bucket/key object or a SQL query.",
		Args: cobra.MaximumNArgs(1),
		RunE: ac.run,
	}

	ac.source.register(cmd)
	cmd.Flags().StringVar(&ac.hints.Revenue, "revenue", "", "Column holding revenue (default: keyword match)")
	cmd.Flags().StringVar(&ac.hints.Expense, "expense", "", "Column holding expenses (default: keyword match)")
	cmd.Flags().StringVar(&ac.hints.Cashflow, "cashflow", "", "Column holding cash flow (default: keyword match)")
	cmd.Flags().StringVar(&ac.profile, "profile", defaults.DefaultProfile, "Scoring profile")
	cmd.Flags().StringVar(&ac.profilesPath, "profiles-file", defaults.ProfilesPath, "Path to the scoring profiles ini file")
	cmd.Flags().StringVar(&ac.format, "format", FormatTable, "Output format (table, text, json)")

	return cmd
}

func (ac *AssessCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	reporter, ok := ac.reporters[ac.format]
	if !ok && ac.format != FormatJSON {
		return fmt.Errorf("unsupported format %q (supported: table, text, json)", ac.format)
	}

	registry, err := ac.profiles(ac.profilesPath)
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}
	settings, err := registry.GetSettings(ctx, ac.profile)
	if err != nil {
		return err
	}

	spec := ac.source.spec(args)
	table, err := loadTable(ctx, ac.open, spec)
	if err != nil {
		return err
	}
	logger.Debug().Str("source", spec.String()).Int("rows", table.Len()).Msg("ledger loaded")

	result, err := assessment.Assess(ctx, table, ac.hints, settings)
	if err != nil {
		return err
	}

	if ac.format == FormatJSON {
		enc := json.NewEncoder(ac.output)
		enc.SetIndent("", "  ")
		return enc.Encode(api.FromAssessment(result))
	}
	return reporter.Handle(export.NewAssessmentReport(spec.String(), result))
}

