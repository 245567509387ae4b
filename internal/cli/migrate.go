package cli

import (
	"context"
	"fmt"

	"recipe-grocery/internal/app"
	"recipe-grocery/internal/infrastructure/config"
	"recipe-grocery/internal/infrastructure/database"
	"recipe-grocery/internal/pkg/common"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create tables and seed the default grocery categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if err := common.InitLogger(cfg.LogLevel); err != nil {
				return err
			}
			defer common.Sync()

			db, err := database.Connect(&cfg.Database)
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := app.Migrate(context.Background(), db); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "migrated %s database\n", cfg.Database.Driver)
			return nil
		},
	}
}
