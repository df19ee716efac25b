// Command shapecheck validates JSON and YAML documents against typeguard
// schemas.
//
//	shapecheck check --schema user.yaml users/*.json
//	shapecheck check --schema user.yaml --watch users/a.json
//	shapecheck describe user.yaml
//	shapecheck explore --schema user.yaml users/a.json
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/typeguard"
)

// defaultConfigFile is read from the working directory when --config is not
// given.
const defaultConfigFile = ".shapecheck.yaml"

// app carries what every subcommand needs once the root has loaded the config.
type app struct {
	cfg    Config
	log    *zap.Logger
	styles styles
	out    io.Writer
	errOut io.Writer
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}
	var (
		configPath string
		logLevel   string
		color      string
	)

	root := &cobra.Command{
		Use:           "shapecheck",
		Short:         "Check documents against structural type schemas",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if configPath == "" {
				if _, err := os.Stat(defaultConfigFile); err == nil {
					configPath = defaultConfigFile
				}
			}
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			if cmd.Flags().Changed("color") {
				cfg.Color = color
			}
			if err := cfg.validate(); err != nil {
				return err
			}
			a.cfg = cfg
			a.log = cfg.newLogger(errOut)
			a.styles = newStyles(cfg.colorEnabled(out))
			typeguard.SetLogger(a.log)
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file (default "+defaultConfigFile+" if present)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&color, "color", "auto", "color output (auto, always, never)")

	root.AddCommand(
		newCheckCmd(a),
		newDescribeCmd(a),
		newExploreCmd(a),
	)

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w\n\n%s", err, cmd.UsageString())
	})
	return root
}
