package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blueprintkit/blueprint/internal/build"
	"github.com/blueprintkit/blueprint/internal/config"
	"github.com/blueprintkit/blueprint/internal/validate"
	"github.com/blueprintkit/blueprint/internal/writer"
)

// GenerateCmd returns the generate command.
func GenerateCmd() *cobra.Command {
	var (
		outDir string
		force  bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "generate <config>...",
		Short: "Generate artifacts from one or more config files",
		Long: `Generate reads each config file (.cue, .yaml, .yml, or .json), validates
it, and writes the generated artifacts under the output directory.

Examples:
  blueprint generate app.yaml
  blueprint generate app.cue --out ./src --force
  blueprint generate app.yaml --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgs := make([]*config.AppConfig, 0, len(args))
			for _, path := range args {
				cfg, err := config.Load(path)
				if err != nil {
					return fmt.Errorf("loading %s: %w", path, err)
				}
				cfgs = append(cfgs, &cfg)
			}

			results, err := build.BuildAll(context.Background(), cfgs)
			if err != nil {
				var verr *validate.Error
				if errors.As(err, &verr) {
					printValidationErrors(verr)
					return errors.New("configuration is invalid; nothing generated")
				}
				return err
			}

			for i, res := range results {
				fmt.Printf("%s %s: %d artifacts\n",
					color.New(color.FgGreen).Sprint("✓"), args[i], len(res.Set.Artifacts))

				if dryRun {
					for _, path := range res.Set.Paths() {
						fmt.Printf("  would write %s\n", path)
					}
					printManifest(res)
					continue
				}

				w := writer.New(outDir)
				if force {
					w.Policy = writer.Force
				}
				written, err := w.Write(res.Set)
				if err != nil {
					return err
				}
				for _, path := range written {
					fmt.Printf("  wrote %s\n", path)
				}
				printManifest(res)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files, even hand-edited ones")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list what would be written without touching disk")
	return cmd
}

func printManifest(res build.Result) {
	if len(res.Set.Dependencies) > 0 {
		fmt.Println("  dependencies:")
		for _, name := range sortedKeys(res.Set.Dependencies) {
			fmt.Printf("    %s %s\n", name, res.Set.Dependencies[name])
		}
	}
	if len(res.Set.DevDependencies) > 0 {
		fmt.Println("  dev dependencies:")
		for _, name := range sortedKeys(res.Set.DevDependencies) {
			fmt.Printf("    %s %s\n", name, res.Set.DevDependencies[name])
		}
	}
	if len(res.Set.Instructions) > 0 {
		fmt.Println()
		fmt.Println(color.New(color.FgCyan).Sprint("  Next steps:"))
		for i, line := range res.Set.Instructions {
			fmt.Printf("  %d. %s\n", i+1, line)
		}
	}
}

func printValidationErrors(verr *validate.Error) {
	fmt.Println(color.New(color.FgRed).Sprint("✗ configuration errors:"))
	for _, fe := range verr.Errors {
		fmt.Printf("  %s: %s\n", color.New(color.FgYellow).Sprint(fe.Path), fe.Message)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
