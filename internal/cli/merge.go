package cli

import (
	"fmt"

	"recipe-grocery/internal/core/grocery"

	"github.com/spf13/cobra"
)

func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "merge <existing> <incoming>",
		Short:   "Combine two quantities the way reconcile does",
		Example: `  grocery merge 500g 300g`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), grocery.MergeQuantities(args[0], args[1]))
			return nil
		},
	}
}
