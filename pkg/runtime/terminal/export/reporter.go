package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
)

type TableConfig struct {
	NameWidth        int
	ValueWidth       int
	UnitWidth        int
	DescriptionWidth int
	// CellWidth caps preview cells; longer values are truncated.
	CellWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:        20,
		ValueWidth:       24,
		UnitWidth:        4,
		DescriptionWidth: 40,
		CellWidth:        20,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

const reportTemplate = `
{{.Title}}
{{range $key, $value := .Summary}}
{{$key}}: {{$value}}{{end}}
{{range .Sections}}
=== {{.Title}} ===
{{if .Details}}{{separator}}
{{formatRow "Name" "Value" "Unit" "Description"}}
{{separator}}
{{range .Details}}{{formatRow .Name .Value .Unit .Description}}
{{end}}{{separator}}
{{end}}{{range .Notes}}- {{.}}
{{end}}{{end}}`

func (c *Reporter) Handle(report *domain.Report) error {
	funcMap := template.FuncMap{
		"formatRow": func(name string, value interface{}, unit string, desc string) string {
			return fmt.Sprintf("| %-*s | %-*v | %-*s | %-*s |",
				c.config.NameWidth, name,
				c.config.ValueWidth, value,
				c.config.UnitWidth, unit,
				c.config.DescriptionWidth, desc)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.UnitWidth+2),
				strings.Repeat("-", c.config.DescriptionWidth+2))
		},
	}

	t, err := template.New("report").Funcs(funcMap).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}

// HandlePreview prints the table size and its first records, one column per cell.
func (c *Reporter) HandlePreview(source string, preview domain.Preview) error {
	if _, err := fmt.Fprintf(c.writer, "\n%s\nRows: %d\nColumns: %s\n\n",
		source, preview.Rows, strings.Join(preview.Columns, ", ")); err != nil {
		return err
	}
	if len(preview.Columns) == 0 {
		return nil
	}

	widths := make([]int, len(preview.Columns))
	for i, col := range preview.Columns {
		widths[i] = len(c.cell(col))
		for _, rec := range preview.Sample {
			if w := len(c.cell(rec[col])); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	separator := func() {
		sb.WriteString("+")
		for _, w := range widths {
			sb.WriteString(strings.Repeat("-", w+2))
			sb.WriteString("+")
		}
		sb.WriteString("\n")
	}
	row := func(values []string) {
		sb.WriteString("|")
		for i, v := range values {
			fmt.Fprintf(&sb, " %-*s |", widths[i], v)
		}
		sb.WriteString("\n")
	}

	separator()
	header := make([]string, len(preview.Columns))
	for i, col := range preview.Columns {
		header[i] = c.cell(col)
	}
	row(header)
	separator()
	for _, rec := range preview.Sample {
		values := make([]string, len(preview.Columns))
		for i, col := range preview.Columns {
			values[i] = c.cell(rec[col])
		}
		row(values)
	}
	separator()

	_, err := io.WriteString(c.writer, sb.String())
	return err
}

func (c *Reporter) cell(v interface{}) string {
	s := ""
	if v != nil {
		s = fmt.Sprint(v)
	}
	if c.config.CellWidth > 3 && len(s) > c.config.CellWidth {
		s = s[:c.config.CellWidth-3] + "..."
	}
	return s
}
