package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var triggerCmd = &cobra.Command{
	Use:   "trigger",
	Short: "Trigger a dataset refresh",
	Long: `Submits a refresh request for the dataset and reports acceptance.
The refresh runs asynchronously on the service side; use "refreshctl wait"
to poll it to completion.`,
	RunE: runTrigger,
}

func init() {
	addRequestFlags(triggerCmd)
	rootCmd.AddCommand(triggerCmd)
}

func runTrigger(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	settings, err := resolveSettings(cfg)
	if err != nil {
		return err
	}
	svc, err := resolveOrchestrator(cmd, cfg)
	if err != nil {
		return err
	}

	if err := svc.Trigger(cmd.Context(), settings.workspaceID, settings.datasetID, settings.request); err != nil {
		return fmt.Errorf("trigger failed: %w", err)
	}

	cmd.Printf("Refresh accepted for dataset %s.\n", settings.datasetID)
	return nil
}
