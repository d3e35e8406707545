package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the current dataset refresh to finish",
	Long: `Polls the dataset's most recent refresh record until it reaches a
terminal state, then reports the final status and elapsed time.

The loop has no deadline of its own: the server-side timeout in the
refresh request is a hint to the service, not a local limit. Interrupt
the command (Ctrl-C) to stop polling early.`,
	RunE: runWait,
}

func init() {
	rootCmd.AddCommand(waitCmd)
}

func runWait(cmd *cobra.Command, _ []string) error {
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

	cmd.Printf("Polling dataset %s every %s...\n", settings.datasetID, settings.pollInterval)

	outcome, err := svc.WaitForCompletion(cmd.Context(), settings.workspaceID, settings.datasetID, settings.pollInterval)
	if err != nil {
		return fmt.Errorf("wait failed: %w", err)
	}

	printOutcome(cmd, outcome)
	return nil
}
