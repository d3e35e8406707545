// Package cli provides the cobra command surface for refreshctl.
package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/pbiops/refreshctl/internal/core/ports/driving"
	"github.com/pbiops/refreshctl/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "refreshctl",
	Short: "Trigger and monitor Power BI dataset refreshes",
	Long: `refreshctl triggers data refreshes for a Power BI dataset and polls the
refresh history until the refresh reaches a terminal state.

Authentication uses an Entra ID service principal (client-credentials
flow). The client secret is read from the PBIREFRESH_CLIENT_SECRET
environment variable or prompted for with --prompt-secret; it is never
written to disk.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

// orchestrator is swapped out in tests. When nil, commands build one from
// the config file and environment at run time.
var orchestrator driving.RefreshOrchestrator

// Persistent flags shared by all commands.
var (
	verboseFlag      bool
	configDirFlag    string
	promptSecretFlag bool
	workspaceFlag    string
	datasetFlag      string
	pollIntervalFlag time.Duration
)

// Request flags shared by the trigger and refresh commands.
var (
	objectFlags        []string
	commitModeFlag     string
	maxParallelismFlag int
	retryCountFlag     int
	timeoutFlag        time.Duration
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging to stderr")
	pf.StringVar(&configDirFlag, "config-dir", "", "config directory (default ~/.refreshctl)")
	pf.BoolVar(&promptSecretFlag, "prompt-secret", false, "prompt for the client secret without echo")
	pf.StringVar(&workspaceFlag, "workspace", "", "workspace (group) ID")
	pf.StringVar(&datasetFlag, "dataset", "", "dataset ID")
	pf.DurationVar(&pollIntervalFlag, "poll-interval", 0, "delay between status polls (default 10s)")
}

// addRequestFlags registers the refresh request flags on a command.
func addRequestFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringArrayVar(&objectFlags, "object", nil,
		`table or "table:partition" to refresh (repeatable; omit for a full-model refresh)`)
	f.StringVar(&commitModeFlag, "commit-mode", "", "commit mode (transactional or partialBatch)")
	f.IntVar(&maxParallelismFlag, "max-parallelism", 0, "maximum parallelism for the server-side refresh")
	f.IntVar(&retryCountFlag, "retry-count", -1, "server-side retry count")
	f.DurationVar(&timeoutFlag, "timeout", 0, "server-side refresh timeout hint")
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx. Cancelling ctx is the
// only way to stop an in-flight poll loop before a terminal status.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
