package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pbiops/refreshctl/internal/core/domain"
	"github.com/pbiops/refreshctl/internal/core/ports/driven"
	"github.com/pbiops/refreshctl/internal/core/ports/driving"
	"github.com/pbiops/refreshctl/internal/logger"
)

// DefaultPollInterval is used when the caller passes a non-positive
// poll interval.
const DefaultPollInterval = 10 * time.Second

// Ensure RefreshOrchestrator implements the interface.
var _ driving.RefreshOrchestrator = (*RefreshOrchestrator)(nil)

// RefreshOrchestrator coordinates one dataset refresh: submit the request,
// then poll the refresh history until a terminal status appears. It holds
// no state between calls; each invocation is independent.
type RefreshOrchestrator struct {
	api driven.RefreshAPI
}

// NewRefreshOrchestrator creates a refresh orchestrator.
func NewRefreshOrchestrator(api driven.RefreshAPI) *RefreshOrchestrator {
	return &RefreshOrchestrator{api: api}
}

// Trigger submits a refresh request for the dataset. A nil error means the
// service accepted it; the refresh then runs out of process and is not
// controlled from here.
func (o *RefreshOrchestrator) Trigger(ctx context.Context, workspaceID, datasetID string, req domain.RefreshRequest) error {
	if err := validateIDs(workspaceID, datasetID); err != nil {
		return err
	}

	if req.IsFullModel() {
		logger.Info("Triggering full-model refresh for dataset %s", datasetID)
	} else {
		logger.Info("Triggering selective refresh for dataset %s (%d objects)", datasetID, len(req.Objects))
	}

	if err := o.api.TriggerRefresh(ctx, workspaceID, datasetID, req); err != nil {
		return fmt.Errorf("trigger refresh: %w", err)
	}
	return nil
}

// WaitForCompletion polls the latest refresh record until its status is
// terminal. The loop is unbounded: the server-side timeout in the refresh
// request is a hint to the service, not a local deadline, so the only
// exits are a terminal status, a query failure, or cancellation of ctx.
// Elapsed time in the outcome runs from the first poll to the terminal
// observation.
func (o *RefreshOrchestrator) WaitForCompletion(ctx context.Context, workspaceID, datasetID string, pollInterval time.Duration) (*domain.RefreshOutcome, error) {
	if err := validateIDs(workspaceID, datasetID); err != nil {
		return nil, err
	}
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	started := time.Now()
	logger.Info("Started polling at %s", started.Format("2006-01-02 15:04:05"))

	polls := 0
	for {
		record, err := o.api.LatestRefresh(ctx, workspaceID, datasetID)
		if err != nil {
			return nil, fmt.Errorf("query refresh status: %w", err)
		}
		polls++

		logger.Info("Current refresh status: %s at %s", record.Status, time.Now().Format("15:04:05"))

		if record.Status.IsTerminal() {
			finished := time.Now()
			outcome := &domain.RefreshOutcome{
				Status:     record.Status,
				StartedAt:  started,
				FinishedAt: finished,
				Polls:      polls,
			}
			logger.Info("Finished at %s, total refresh time %.2f seconds",
				finished.Format("2006-01-02 15:04:05"), outcome.Elapsed().Seconds())
			return outcome, nil
		}

		if err := sleep(ctx, pollInterval); err != nil {
			return nil, err
		}
	}
}

// Run triggers a refresh and waits for it to complete.
func (o *RefreshOrchestrator) Run(ctx context.Context, workspaceID, datasetID string, req domain.RefreshRequest, pollInterval time.Duration) (*domain.RefreshOutcome, error) {
	if err := o.Trigger(ctx, workspaceID, datasetID, req); err != nil {
		return nil, err
	}
	return o.WaitForCompletion(ctx, workspaceID, datasetID, pollInterval)
}

func validateIDs(workspaceID, datasetID string) error {
	var missing []string
	if strings.TrimSpace(workspaceID) == "" {
		missing = append(missing, "workspace id")
	}
	if strings.TrimSpace(datasetID) == "" {
		missing = append(missing, "dataset id")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

// sleep blocks for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
