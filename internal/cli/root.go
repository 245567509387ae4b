package cli

import (
	"fmt"
	"os"

	"recipe-grocery/internal/core/grocery"
	"recipe-grocery/internal/pkg/common"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRootCmd 建立 grocery 指令樹
func NewRootCmd() *cobra.Command {
	var rulesFile string

	root := &cobra.Command{
		Use:   "grocery",
		Short: "Recipe to grocery list tools",
		Long: `Tools for turning recipe ingredients into grocery list items.

Parse and merge work offline against the reconcile rules.
Reconcile and migrate use the configured database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&rulesFile, "rules", "", "reconcile rules file (defaults to the built-in rules)")

	loadRules := func() (*grocery.Rules, error) {
		return grocery.LoadRules(rulesFile)
	}

	root.AddCommand(
		newParseCmd(loadRules),
		newMergeCmd(),
		newReconcileCmd(),
		newMigrateCmd(),
	)
	return root
}

// Execute 執行指令，失敗時記錄錯誤並以狀態碼 1 結束
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if initErr := common.InitLogger("info"); initErr == nil {
			common.LogError("command failed", zap.Error(err))
			common.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
