package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/de-tools/fin-atlas/pkg/models/api"
	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/de-tools/fin-atlas/pkg/services/ingest"
	"github.com/spf13/cobra"
)

// PreviewReporter renders the first records of a table.
type PreviewReporter interface {
	HandlePreview(source string, preview domain.Preview) error
}

type PreviewCmd struct {
	source sourceFlags
	rows   int
	format string

	open     LoaderFunc
	reporter PreviewReporter
	output   io.Writer
}

func NewPreviewCmd(open LoaderFunc, reporter PreviewReporter, output io.Writer) *cobra.Command {
	pc := &PreviewCmd{open: open, reporter: reporter, output: output}
	cmd := &cobra.Command{
		Use:   "preview [source]",
		Short: "Show the columns and first records of a ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE:  pc.run,
	}

	pc.source.register(cmd)
	cmd.Flags().IntVar(&pc.rows, "rows", ingest.DefaultPreviewRows, "Number of records to show")
	cmd.Flags().StringVar(&pc.format, "format", FormatTable, "Output format (table, json)")

	return cmd
}

func (pc *PreviewCmd) run(cmd *cobra.Command, args []string) error {
	if pc.format != FormatTable && pc.format != FormatJSON {
		return fmt.Errorf("unsupported format %q (supported: table, json)", pc.format)
	}

	spec := pc.source.spec(args)
	table, err := loadTable(cmd.Context(), pc.open, spec)
	if err != nil {
		return err
	}

	preview := ingest.Preview(table, pc.rows)
	if pc.format == FormatJSON {
		enc := json.NewEncoder(pc.output)
		enc.SetIndent("", "  ")
		return enc.Encode(api.FromPreview(preview))
	}
	return pc.reporter.HandlePreview(spec.String(), preview)
}
