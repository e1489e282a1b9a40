// Package info provides the one-shot aggregate command for the holocron CLI.
package info

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/holocron/internal/cmd/application"
	"github.com/agentstation/holocron/internal/cmd/output"
)

// NewCommand creates the info command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "info",
		Aliases: []string{"information"},
		Short:   "Run one aggregate and print the composite",
		Long: `Run the three catalog lookups once and print the composite answer.

Fields that could not be resolved are printed with their default value and
marked as defaulted. The command succeeds even when every lookup fails.`,
		Example: `  # Table on a terminal, JSON when piped
  holocron info

  # Force a format
  holocron info --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			aggregator, err := app.Aggregator()
			if err != nil {
				return err
			}

			composite := aggregator.Aggregate(cmd.Context())

			app.Logger().Debug().
				Str("starship", string(composite.Provenance.Starship)).
				Str("crew", string(composite.Provenance.Crew)).
				Str("is_leia_on_planet", string(composite.Provenance.IsLeiaOnPlanet)).
				Msg("Aggregate provenance")

			formatter := output.NewFormatter(output.DetectFormat(app.OutputFormat()))
			return formatter.Format(cmd.OutOrStdout(), output.NewComposite(composite))
		},
	}
}
