package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tincture/internal/compression"
	"github.com/jmylchreest/tincture/internal/engine"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		dataFile   string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "render TEMPLATE",
		Short: "Render a template with tincture's filters and functions",
		Long: `Render a text/template or pongo2 template file.

Data is loaded from a JSON or YAML mapping. Use "-" to read the template
from stdin. Template and data files may be gzip, xz or bzip2 compressed.

Examples:
  # text/template
  echo '{{ css_rgb "color" .red }}' | tincture render - --data colours.yaml

  # pongo2
  tincture render theme.j2 --engine pongo2 --data colours.yaml -o theme.css`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := engine.ParseKind(a.cfg.Engine)
			if err != nil {
				return err
			}
			src, err := readInput(cmd.InOrStdin(), args[0], a.cfg.MaxDecodedBytes)
			if err != nil {
				return err
			}
			data, err := loadDataFile(dataFile, a.cfg.MaxDecodedBytes)
			if err != nil {
				return err
			}

			name := compression.TrimExt(filepath.Base(args[0]))
			if args[0] == "-" {
				name = "stdin"
			}
			out, err := a.engine().Render(kind, name, string(src), data)
			if err != nil {
				return err
			}
			if err := writeOutput(cmd.OutOrStdout(), outputFile, []byte(out)); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			a.logger.Debug("rendered template", "template", name, "engine", kind, "bytes", len(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataFile, "data", "d", "", "JSON or YAML data file")
	cmd.Flags().StringP("engine", "e", string(engine.KindText), "template engine (text, pongo2)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write to file instead of stdout")
	return cmd
}
