package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/de-tools/fin-atlas/pkg/services/ingest"
	"github.com/spf13/cobra"
)

// SourceSpec identifies where a ledger is read from: a file path or
// s3://bucket/key in Location, or a database query when Driver is set.
type SourceSpec struct {
	Location string
	Driver   string
	DSN      string
	Query    string
}

func (s SourceSpec) String() string {
	if s.Driver != "" {
		return fmt.Sprintf("%s query", s.Driver)
	}
	return s.Location
}

func (s SourceSpec) validate() error {
	if s.Driver == "" {
		if s.Location == "" {
			return fmt.Errorf("a source file, s3:// uri or --driver is required")
		}
		if s.DSN != "" || s.Query != "" {
			return fmt.Errorf("--dsn and --query require --driver")
		}
		return nil
	}
	if s.Location != "" {
		return fmt.Errorf("a positional source cannot be combined with --driver")
	}
	if s.Query == "" {
		return fmt.Errorf("--query is required with --driver")
	}
	return nil
}

// LoaderFunc opens a loader for spec. The returned release func frees any
// connection the loader holds and is never nil on success.
type LoaderFunc func(ctx context.Context, spec SourceSpec) (ingest.Loader, func(), error)

type sourceFlags struct {
	driver string
	dsn    string
	query  string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.driver, "driver", "", "Database driver for a SQL source (duckdb, snowflake, databricks)")
	cmd.Flags().StringVar(&f.dsn, "dsn", "", "Data source name for the SQL source")
	cmd.Flags().StringVar(&f.query, "query", "", "Query returning the ledger rows")
}

func (f *sourceFlags) spec(args []string) SourceSpec {
	spec := SourceSpec{Driver: f.driver, DSN: f.dsn, Query: f.query}
	if len(args) > 0 {
		spec.Location = args[0]
	}
	return spec
}

func loadTable(ctx context.Context, open LoaderFunc, spec SourceSpec) (domain.Table, error) {
	if err := spec.validate(); err != nil {
		return domain.Table{}, err
	}

	loader, release, err := open(ctx, spec)
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to open source %s: %w", spec, err)
	}
	defer release()

	table, err := loader.Load(ctx)
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to load %s: %w", spec, err)
	}
	return table, nil
}
