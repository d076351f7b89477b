package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blueprintkit/blueprint/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "blueprint",
		Short: "blueprint - generate application scaffolding from declarative config",
		Long: `blueprint turns a declarative application config (entities, navigation,
error-handling policy) into ready-to-use source artifacts: typed models,
validation schemas, server actions, UI components, and middleware.`,
	}

	rootCmd.AddCommand(cli.GenerateCmd())
	rootCmd.AddCommand(cli.ValidateCmd())
	rootCmd.AddCommand(cli.PreviewCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
