// Package main provides the CLI entry point for logroute, a tool for
// validating routing configurations and exercising them with test events.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/routelab/logroute/config"
	"github.com/routelab/logroute/core"
	"github.com/routelab/logroute/router"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "logroute",
		Short:         "Validate and exercise log routing configurations",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(newValidateCmd(), newEmitCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config>",
		Short: "Parse and validate a routing configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig(args[0])
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			fmt.Printf("%s: %d handler(s), default level %s\n",
				args[0], len(cfg.Handlers), cfg.DefaultLevel())
			return nil
		},
	}
}

type emitFlags struct {
	Category string
	Level    string
	Message  string
	Count    int
}

func (f *emitFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.Category, "category", "", "event category (empty for uncategorized)")
	flags.StringVar(&f.Level, "level", "info", "event severity: trace, debug, info, warn, error")
	flags.StringVar(&f.Message, "message", "hello from logroute", "event message")
	flags.IntVar(&f.Count, "count", 1, "number of events to emit")
}

func newEmitCmd() *cobra.Command {
	flags := &emitFlags{}

	cmd := &cobra.Command{
		Use:   "emit <config>",
		Short: "Route test events through a configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig(args[0])
			if err != nil {
				return err
			}

			level, err := core.ParseLevel(flags.Level)
			if err != nil {
				return fmt.Errorf("--level: %w", err)
			}

			if _, err := router.Configure(cfg); err != nil {
				return err
			}

			for i := 0; i < flags.Count; i++ {
				router.Log(flags.Category, wireFor(level), flags.Message)
			}

			return router.Shutdown()
		},
	}

	flags.register(cmd.Flags())

	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return config.Parse(data)
}

// wireFor maps a severity onto its canonical wire value.
func wireFor(level core.Level) core.WireLevel {
	switch level {
	case core.TraceLevel:
		return core.WireVerbose
	case core.DebugLevel:
		return core.WireDebug
	case core.WarnLevel:
		return core.WireWarn
	case core.ErrorLevel:
		return core.WireError
	default:
		return core.WireInfo
	}
}
