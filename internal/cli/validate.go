package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blueprintkit/blueprint/internal/classify"
	"github.com/blueprintkit/blueprint/internal/config"
	"github.com/blueprintkit/blueprint/internal/gen/navigation"
	"github.com/blueprintkit/blueprint/internal/validate"
)

// ValidateCmd returns the validate command.
func ValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config>...",
		Short: "Check config files without generating anything",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := false
			for _, path := range args {
				cfg, err := config.Load(path)
				if err != nil {
					fmt.Printf("%s %s: %v\n", color.New(color.FgRed).Sprint("✗"), path, err)
					failed = true
					continue
				}
				if err := validate.Config(&cfg); err != nil {
					var verr *validate.Error
					if errors.As(err, &verr) {
						fmt.Printf("%s %s:\n", color.New(color.FgRed).Sprint("✗"), path)
						for _, fe := range verr.Errors {
							fmt.Printf("  %s: %s\n", color.New(color.FgYellow).Sprint(fe.Path), fe.Message)
						}
					} else {
						fmt.Printf("%s %s: %v\n", color.New(color.FgRed).Sprint("✗"), path, err)
					}
					failed = true
					continue
				}
				routes := len(navigation.Flatten(cfg.Navigation))
				gated := ""
				if classify.Gated(cfg.Navigation) {
					gated = ", gated"
				}
				fmt.Printf("%s %s (%d entities, %d routes%s)\n",
					color.New(color.FgGreen).Sprint("✓"), path, len(cfg.Entities), routes, gated)
			}
			if failed {
				return errors.New("validation failed")
			}
			return nil
		},
	}
}
