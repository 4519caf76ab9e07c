package cli

import (
	"fmt"

	"github.com/farm-stack/create-farm-app/internal/config"
	"github.com/farm-stack/create-farm-app/internal/doctor"
	"github.com/farm-stack/create-farm-app/internal/logging"
	"github.com/spf13/cobra"
)

func newDoctorCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the template and required tools are available",
		Long: `Run diagnostic checks before creating a project.

Verifies that the bundled template is readable and that the frontend, backend
and git commands are on PATH. Commands with a configured min_version are asked
for --version and compared against it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			settings, configErr := e.loadSettings()
			if configErr != nil {
				logging.Warn("Falling back to default settings", "error", configErr)
				settings = config.Defaults()
			}

			templateDir, err := e.locateTemplate(settings.TemplateDir)
			if err != nil {
				return fmt.Errorf("locating template: %w", err)
			}

			_, err = doctor.Run(cmd.Context(), out, templateDir, settings, configErr, e.doctor)
			return err
		},
	}
}
