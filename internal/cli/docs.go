package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/tincture/internal/registry"
)

// Documentation formats.
const (
	formatTable    = "table"
	formatMarkdown = "markdown"
	formatJSON     = "json"
	formatYAML     = "yaml"
)

func newDocsCmd() *cobra.Command {
	var (
		format     string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Print the reference for every filter and function",
		Long: `Print the reference for every filter and function with its examples.

Formats: table (default on a terminal), markdown (default otherwise), json, yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			width, isTerm := terminalWidth(out)
			if outputFile != "" {
				isTerm = false
			}
			if format == "" {
				format = formatMarkdown
				if isTerm {
					format = formatTable
				}
			}

			data, err := renderDocs(registry.All(), format, width)
			if err != nil {
				return err
			}
			return writeOutput(out, outputFile, data)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (table, markdown, json, yaml)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write to file instead of stdout")
	return cmd
}

// renderDocs formats descriptors. width limits table output when positive.
func renderDocs(ds []registry.Descriptor, format string, width int) ([]byte, error) {
	switch format {
	case formatTable:
		return []byte(docsTable(ds, width)), nil
	case formatMarkdown:
		var sb strings.Builder
		writeMarkdown(&sb, ds)
		return []byte(sb.String()), nil
	case formatJSON:
		data, err := json.MarshalIndent(ds, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return append(data, '\n'), nil
	case formatYAML:
		data, err := yaml.Marshal(ds)
		if err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("unknown format %q (expected %s, %s, %s or %s)",
		format, formatTable, formatMarkdown, formatJSON, formatYAML)
}

// docsTable lists one example per row.
func docsTable(ds []registry.Descriptor, width int) string {
	table := NewTable([]string{"KIND", "NAME", "EXAMPLE", "OUTPUT"})
	for _, d := range ds {
		for i, ex := range d.Examples {
			kind, name := string(d.Kind), d.Name
			if i > 0 {
				kind, name = "", ""
			}
			table.AddRow([]string{kind, name, ex.Call(d.Name), ex.Output})
		}
	}
	if width > 0 {
		table.FitWidth(width, 2)
	}
	return table.Render()
}

func writeMarkdown(w io.Writer, ds []registry.Descriptor) {
	fmt.Fprintln(w, "# tincture reference")
	var kind registry.Kind
	for _, d := range ds {
		if d.Kind != kind {
			kind = d.Kind
			fmt.Fprintf(w, "\n## %ss\n", strings.ToUpper(string(kind[:1]))+string(kind[1:]))
		}
		fmt.Fprintf(w, "\n### %s\n\n%s\n\n", d.Name, d.Description)
		fmt.Fprintln(w, "| Example | Output |")
		fmt.Fprintln(w, "|---|---|")
		for _, ex := range d.Examples {
			fmt.Fprintf(w, "| %s | %s |\n", markdownCode(ex.Call(d.Name)), markdownCode(ex.Output))
		}
	}
}

// markdownCode formats s as inline code inside a table cell.
func markdownCode(s string) string {
	return "`" + strings.ReplaceAll(s, "|", `\|`) + "`"
}
