// Package main runs the product catalog editor and its product service simulator.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/product-catalog-editor/internal/config"
	"github.com/fairyhunter13/product-catalog-editor/internal/obs"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "product-catalog-editor",
		Short:         "Edit a product catalog through the product service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			obs.SetLevel(config.Load().LogLevel)
			obs.InitLogger()
		},
	}
	root.AddCommand(newServeCmd(), newListCmd(), newEditCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		obs.Logger.Error("command_failed", "error", err)
		os.Exit(1)
	}
}
