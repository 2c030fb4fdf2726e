package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	domainconfig "github.com/felixgeelhaar/explore-go/domain/config"
	infraconfig "github.com/felixgeelhaar/explore-go/infrastructure/config"
)

// validateOptions holds options for the validate command.
type validateOptions struct {
	scenarioPath string
	strict       bool
}

// newValidateCmd creates the validate command.
func (a *App) newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a scenario file",
		Long: `Validate a scenario file for correctness.

This command checks:
  - File format (YAML or JSON)
  - Grid dimensions and obstacle bounds
  - Agent start positions (bounds, duplicates, obstacle collisions)
  - Dynamic obstacle capacity
  - Environment variable references (in strict mode)

Examples:
  # Validate a scenario file
  explore validate -c scenario.yaml

  # Strict validation (fail on missing env vars)
  explore validate -c scenario.yaml --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validateScenario(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.scenarioPath, "scenario", "c", "", "Path to scenario file (required)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail on missing environment variables")

	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}

// validateScenario loads and validates the scenario file.
func (a *App) validateScenario(opts *validateOptions) error {
	loader := infraconfig.NewLoaderWithOptions(
		infraconfig.WithStrictEnv(opts.strict),
	)

	s, err := loader.LoadFile(opts.scenarioPath)
	if err != nil {
		var verr *domainconfig.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(a.stdout, "✗ scenario is invalid:\n")
			for _, problem := range verr.Problems {
				fmt.Fprintf(a.stdout, "  - %s\n", problem)
			}
			return errors.New("scenario validation failed")
		}
		return err
	}

	starts := s.ResolvedStarts()
	fmt.Fprintf(a.stdout, "✓ scenario %q is valid\n", s.Name)
	fmt.Fprintf(a.stdout, "  grid:             %dx%d\n", s.Grid.Width, s.Grid.Height)
	fmt.Fprintf(a.stdout, "  static obstacles: %d\n", len(s.StaticObstacles))
	fmt.Fprintf(a.stdout, "  agents:           %d\n", len(starts))
	fmt.Fprintf(a.stdout, "  mobile obstacles: %d\n", s.DynamicObstacles.Count)
	return nil
}
