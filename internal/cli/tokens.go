package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tincture/pkg/value"
)

func newEncodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "encode [FILE|-]",
		Short: "Encode JSON or YAML data as a URL-safe token",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			raw, err := readInput(cmd.InOrStdin(), path, a.cfg.MaxDecodedBytes)
			if err != nil {
				return err
			}
			parsed, err := parseData(raw)
			if err != nil {
				return err
			}
			v, err := value.FromNative(parsed)
			if err != nil {
				return fmt.Errorf("unsupported data: %w", err)
			}
			tok, err := a.codec.Encode(v)
			if err != nil {
				return err
			}
			a.logger.Debug("encoded token", "input_bytes", len(raw), "token_bytes", len(tok))
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
}

func newDecodeCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "decode TOKEN",
		Short: "Decode a token back into JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.codec.Decode(args[0])
			if err != nil {
				return err
			}
			out, err := marshalValue(v, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json, yaml)")
	return cmd
}
