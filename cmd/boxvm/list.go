package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boxvm/boxvm/pkg/demo"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, sc := range demo.Scenarios() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", sc.Name, sc.Title)
			}
			return nil
		},
	}
}
