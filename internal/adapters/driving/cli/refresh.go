package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Trigger a refresh and wait for it to finish",
	Long: `Submits a refresh request and then polls the dataset's refresh history
until the refresh reaches a terminal state. This is the end-to-end flow:
trigger, poll, report the outcome.`,
	RunE: runRefresh,
}

func init() {
	addRequestFlags(refreshCmd)
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, _ []string) error {
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

	cmd.Printf("Refreshing dataset %s...\n", settings.datasetID)

	outcome, err := svc.Run(cmd.Context(), settings.workspaceID, settings.datasetID, settings.request, settings.pollInterval)
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	printOutcome(cmd, outcome)
	return nil
}
