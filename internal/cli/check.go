package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tincture/internal/registry"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run every documented example against the operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			total := 0
			for _, d := range registry.All() {
				total += len(d.Examples)
			}

			failures := registry.Verify(a.set)
			for _, f := range failures {
				a.logger.Error("example failed", "kind", f.Kind, "name", f.Name, "example", f.Index+1, "want", f.Want, "got", f.Got, "error", f.Err)
				fmt.Fprintln(cmd.ErrOrStderr(), "FAIL", f.String())
			}
			if len(failures) > 0 {
				return fmt.Errorf("%d of %d checks failed", len(failures), total)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d examples\n", total)
			return nil
		},
	}
}
