// Package cli provides the command-line interface for tincture.
package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/tincture/internal/config"
	"github.com/jmylchreest/tincture/internal/engine"
	"github.com/jmylchreest/tincture/internal/ops"
	"github.com/jmylchreest/tincture/internal/token"
	"github.com/jmylchreest/tincture/internal/version"
)

// app is the state shared by every command of one root command. It is
// filled in by the root's PersistentPreRunE.
type app struct {
	configFile string
	verbose    bool

	cfg    config.Config
	logger hclog.Logger
	codec  *token.Codec
	set    *ops.Set
}

// setup loads configuration and builds the logger and operation set.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.NewLoader().
		WithConfigFile(a.configFile).
		WithFlags(cmd.Flags()).
		Load()
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.LogLevel = hclog.Debug.String()
	}
	a.cfg = cfg
	a.logger = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if cfg.File != "" {
		a.logger.Debug("loaded config file", "path", cfg.File)
	}

	a.codec = token.NewCodec(token.WithMaxDecodedBytes(cfg.MaxDecodedBytes))
	a.set = ops.NewSet(ops.WithCodec(a.codec))
	return nil
}

func (a *app) engine() *engine.Engine {
	return engine.New(a.set, engine.WithLogger(a.logger.Named("engine")))
}

// NewRootCmd builds the tincture command tree.
func NewRootCmd() *cobra.Command {
	a := &app{logger: hclog.NewNullLogger()}

	rootCmd := &cobra.Command{
		Use:   "tincture",
		Short: "Colour and data-token operations for templates",
		Long: `tincture adds colour manipulation and URL-safe data tokens to Go templates.

It renders text/template and pongo2 templates with filters such as add, sub,
mod, mix, trunc, urlencode and urldecode, and functions such as if, object
and css_rgb. Every operation documents itself with executable examples.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default $XDG_CONFIG_HOME/tincture/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().Int64("max-decoded-bytes", token.DefaultMaxDecodedBytes, "maximum decoded size of a token")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newRenderCmd(a))
	rootCmd.AddCommand(newDocsCmd())
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newEncodeCmd(a))
	rootCmd.AddCommand(newDecodeCmd(a))
	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
