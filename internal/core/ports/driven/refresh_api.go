package driven

import (
	"context"

	"github.com/pbiops/refreshctl/internal/core/domain"
)

// RefreshAPI is the outbound port to the BI service's refresh endpoints.
type RefreshAPI interface {
	// TriggerRefresh submits a refresh request for the dataset. A nil
	// error means the service accepted the request (202); the refresh
	// itself runs asynchronously on the service side.
	TriggerRefresh(ctx context.Context, workspaceID, datasetID string, req domain.RefreshRequest) error

	// LatestRefresh returns the most recent entry of the dataset's
	// refresh history.
	LatestRefresh(ctx context.Context, workspaceID, datasetID string) (*domain.RefreshRecord, error)
}
