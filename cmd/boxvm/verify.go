package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boxvm/boxvm/pkg/demo"
)

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify [name ...]",
		Short: "Run scenarios and diff their output against the expected text",
		RunE: func(cmd *cobra.Command, args []string) error {
			mismatches, err := demo.Verify(args...)
			if err != nil {
				return err
			}
			for _, m := range mismatches {
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s\n--- got ---\n%s--- want ---\n%s", m.Name, m.Got, m.Want)
			}
			if len(mismatches) > 0 {
				return fmt.Errorf("%d scenario(s) failed verification", len(mismatches))
			}
			n := len(args)
			if n == 0 {
				n = len(demo.Scenarios())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %d scenario(s) verified\n", n)
			return nil
		},
	}
}
