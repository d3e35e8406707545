package driving

import (
	"context"
	"time"

	"github.com/pbiops/refreshctl/internal/core/domain"
)

// RefreshOrchestrator coordinates the trigger-then-monitor flow for one
// dataset refresh. Exactly one refresh is tracked per invocation.
type RefreshOrchestrator interface {
	// Trigger submits a refresh request. Nil error means accepted.
	Trigger(ctx context.Context, workspaceID, datasetID string, req domain.RefreshRequest) error

	// WaitForCompletion polls the dataset's latest refresh record until a
	// terminal status is observed, sleeping pollInterval between polls.
	// The loop has no deadline of its own; it ends on a terminal status,
	// a query failure, or cancellation of ctx.
	WaitForCompletion(ctx context.Context, workspaceID, datasetID string, pollInterval time.Duration) (*domain.RefreshOutcome, error)

	// Run triggers a refresh and then waits for it to complete.
	Run(ctx context.Context, workspaceID, datasetID string, req domain.RefreshRequest, pollInterval time.Duration) (*domain.RefreshOutcome, error)
}
