package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pbiops/refreshctl/internal/core/domain"
	"github.com/pbiops/refreshctl/internal/core/ports/driving"
)

// mockOrchestrator implements driving.RefreshOrchestrator for testing.
type mockOrchestrator struct {
	mu sync.Mutex

	triggerErr error
	waitErr    error
	outcome    *domain.RefreshOutcome

	triggerCalls     int
	triggerWorkspace string
	triggerDataset   string
	triggerRequest   domain.RefreshRequest

	waitCalls    int
	waitInterval time.Duration
}

var _ driving.RefreshOrchestrator = (*mockOrchestrator)(nil)

func (m *mockOrchestrator) Trigger(_ context.Context, workspaceID, datasetID string, req domain.RefreshRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.triggerCalls++
	m.triggerWorkspace = workspaceID
	m.triggerDataset = datasetID
	m.triggerRequest = req
	return m.triggerErr
}

func (m *mockOrchestrator) WaitForCompletion(_ context.Context, _, _ string, pollInterval time.Duration) (*domain.RefreshOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.waitCalls++
	m.waitInterval = pollInterval
	if m.waitErr != nil {
		return nil, m.waitErr
	}
	return m.outcome, nil
}

func (m *mockOrchestrator) Run(ctx context.Context, workspaceID, datasetID string, req domain.RefreshRequest, pollInterval time.Duration) (*domain.RefreshOutcome, error) {
	if err := m.Trigger(ctx, workspaceID, datasetID, req); err != nil {
		return nil, err
	}
	return m.WaitForCompletion(ctx, workspaceID, datasetID, pollInterval)
}

// setupCLITest installs a mock orchestrator and captures command output.
func setupCLITest(t *testing.T, mock driving.RefreshOrchestrator) *bytes.Buffer {
	t.Helper()

	old := orchestrator
	orchestrator = mock

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)

	t.Cleanup(func() {
		orchestrator = old
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags()
	})

	return buf
}

// resetFlags restores package-level flag variables between tests.
func resetFlags() {
	verboseFlag = false
	configDirFlag = ""
	promptSecretFlag = false
	workspaceFlag = ""
	datasetFlag = ""
	pollIntervalFlag = 0
	objectFlags = nil
	commitModeFlag = ""
	maxParallelismFlag = 0
	retryCountFlag = -1
	timeoutFlag = 0
}

func completedOutcome() *domain.RefreshOutcome {
	started := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	return &domain.RefreshOutcome{
		Status:     domain.StatusCompleted,
		StartedAt:  started,
		FinishedAt: started.Add(42 * time.Second),
		Polls:      5,
	}
}
