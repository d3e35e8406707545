package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitCmd_Use(t *testing.T) {
	assert.Equal(t, "wait", waitCmd.Use)
	assert.Contains(t, waitCmd.Long, "no deadline")
}

func TestWaitCmd_ReportsOutcome(t *testing.T) {
	mock := &mockOrchestrator{outcome: completedOutcome()}
	buf := setupCLITest(t, mock)

	rootCmd.SetArgs([]string{
		"wait",
		"--workspace", "ws1",
		"--dataset", "ds1",
		"--config-dir", t.TempDir(),
	})

	require.NoError(t, rootCmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "Polling dataset ds1 every 10s...")
	assert.Contains(t, out, "Final status: Completed")
	assert.Contains(t, out, "Started at:   2026-08-30 10:00:00")
	assert.Contains(t, out, "Finished at:  2026-08-30 10:00:42")
	assert.Contains(t, out, "Total refresh time: 42.00 seconds")

	// Poll interval came from config defaults
	assert.Equal(t, 10*time.Second, mock.waitInterval)
}

func TestWaitCmd_PollIntervalFlag(t *testing.T) {
	mock := &mockOrchestrator{outcome: completedOutcome()}
	setupCLITest(t, mock)

	rootCmd.SetArgs([]string{
		"wait",
		"--workspace", "ws1",
		"--dataset", "ds1",
		"--config-dir", t.TempDir(),
		"--poll-interval", "3s",
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, 3*time.Second, mock.waitInterval)
}

func TestWaitCmd_QueryFailureIsFatal(t *testing.T) {
	mock := &mockOrchestrator{waitErr: errors.New("query refresh status: status 500")}
	setupCLITest(t, mock)

	rootCmd.SetArgs([]string{
		"wait",
		"--workspace", "ws1",
		"--dataset", "ds1",
		"--config-dir", t.TempDir(),
	})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wait failed")
	assert.Contains(t, err.Error(), "500")
}
