package cli

import (
	"fmt"

	"recipe-grocery/internal/core/grocery"

	"github.com/spf13/cobra"
)

func newParseCmd(loadRules func() (*grocery.Rules, error)) *cobra.Command {
	return &cobra.Command{
		Use:     "parse <ingredient>...",
		Short:   "Split ingredient lines into name and quantity",
		Example: `  grocery parse "500 g Hähnchenbrust" "Salz" "beef 300g"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadRules()
			if err != nil {
				return err
			}
			staples := grocery.NewStaplesFilter(rules.Staples)

			out := cmd.OutOrStdout()
			for _, raw := range args {
				p := grocery.ParseIngredient(raw)
				fmt.Fprintf(out, "%q\tname=%q\tquantity=%q\tstaple=%t\n", raw, p.Name, p.Quantity, staples.ShouldSkip(raw))
			}
			return nil
		},
	}
}
