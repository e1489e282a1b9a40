// Package version provides the version command for the holocron CLI.
package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/holocron/internal/cmd/application"
	"github.com/agentstation/holocron/internal/cmd/output"
)

// Info is the build information printed by the version command.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Date      string `json:"date" yaml:"date"`
	BuiltBy   string `json:"built_by" yaml:"built_by"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// NewCommand creates the version command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := Info{
				Version:   app.Version(),
				Commit:    app.Commit(),
				Date:      app.Date(),
				BuiltBy:   app.BuiltBy(),
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}

			switch format := output.Format(app.OutputFormat()); format {
			case output.FormatJSON, output.FormatYAML:
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), info)
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "holocron version %s\n", info.Version)
			_, _ = fmt.Fprintf(w, "commit: %s\n", info.Commit)
			_, _ = fmt.Fprintf(w, "built: %s\n", info.Date)
			_, _ = fmt.Fprintf(w, "built by: %s\n", info.BuiltBy)
			_, _ = fmt.Fprintf(w, "go version: %s\n", info.GoVersion)
			_, _ = fmt.Fprintf(w, "platform: %s\n", info.Platform)
			return nil
		},
	}
}
