package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"recipe-grocery/internal/app"
	"recipe-grocery/internal/infrastructure/config"
	"recipe-grocery/internal/pkg/common"

	"github.com/spf13/cobra"
)

func newReconcileCmd() *cobra.Command {
	var recipeID, userID string

	cmd := &cobra.Command{
		Use:     "reconcile",
		Short:   "Add a stored recipe's ingredients to a user's grocery list",
		Example: `  grocery reconcile --recipe 2f6c... --user u1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if rules, _ := cmd.Flags().GetString("rules"); rules != "" {
				cfg.Reconcile.RulesFile = rules
			}
			if err := common.InitLogger(cfg.LogLevel); err != nil {
				return err
			}
			defer common.Sync()

			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.Service.ReconcileRecipe(context.Background(), recipeID, userID)
			if err != nil {
				return fmt.Errorf("reconcile failed: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVar(&recipeID, "recipe", "", "recipe id")
	cmd.Flags().StringVar(&userID, "user", "", "owner user id")
	_ = cmd.MarkFlagRequired("recipe")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
