package main

import (
	"github.com/spf13/cobra"

	"github.com/boxvm/boxvm/pkg/demo"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run [name ...]",
		Short: "Run built-in scenarios or user programs",
		Long: `Run executes the named programs in order. Without arguments every
built-in scenario runs. Names that are not built-in are looked up as
.jbx files in the script directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return demo.Run(a.library(), cmd.OutOrStdout(), a.sink(), args...)
		},
	}
}
