package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/boxvm/boxvm/internal/config"
	"github.com/boxvm/boxvm/pkg/demo"
	"github.com/boxvm/boxvm/pkg/vm"
)

// app holds the resolved configuration shared by the subcommands.
type app struct {
	cfgFile string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "boxvm",
		Short: "Run demonstrations of Java's boxing and unboxing conversions",
		Long: `boxvm compiles a small Java-flavored dialect and executes it on a stack
machine that reports every conversion the compiler inserted: boxing,
unboxing, widening and narrowing, each tagged with the context that
required it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", config.DefaultFile, "config file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warning, error)")
	rootCmd.PersistentFlags().Bool("trace", false, "stream conversion events through the logger")
	rootCmd.PersistentFlags().String("script-dir", ".", "search path for user .jbx programs")

	rootCmd.AddCommand(
		newListCmd(a),
		newRunCmd(a),
		newVerifyCmd(a),
		newExecCmd(a),
	)

	return rootCmd
}

// setup loads the configuration with the command's flags bound over it.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log.SetLevel(cfg.Level())
	a.cfg = cfg
	return nil
}

// sink returns the event sink for a run, or nil when tracing is off.
func (a *app) sink() vm.EventSink {
	if !a.cfg.Trace {
		return nil
	}
	return vm.NewTraceSink(log.StandardLogger())
}

// library builds the loader chain: built-in scenarios first, then user
// scripts from the configured directory.
func (a *app) library() demo.Library {
	return demo.NewScriptLibrary(a.cfg.ScriptDir, demo.NewBuiltinLibrary())
}
