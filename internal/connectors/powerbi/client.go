package powerbi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/pbiops/refreshctl/internal/core/domain"
	"github.com/pbiops/refreshctl/internal/core/ports/driven"
	"github.com/pbiops/refreshctl/internal/logger"
)

const (
	// DefaultBaseURL is the Power BI REST API surface for the caller's organisation.
	DefaultBaseURL = "https://api.powerbi.com/v1.0/myorg"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// requestRate caps outbound requests so a tight poll interval cannot
	// hammer the API.
	requestRate = 2.0

	// maxBodyBytes bounds how much of an error body is read for diagnosis.
	maxBodyBytes = 64 << 10
)

// Ensure Client implements the RefreshAPI port.
var _ driven.RefreshAPI = (*Client)(nil)

// Client talks to the Power BI refresh endpoints. Construct one per
// operation; it holds no state beyond its HTTP client and token provider.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     driven.TokenProvider
	limiter    *rate.Limiter
}

// NewClient creates a client against the public Power BI API.
func NewClient(tokens driven.TokenProvider) *Client {
	return NewClientWithBaseURL(tokens, DefaultBaseURL)
}

// NewClientWithBaseURL creates a client against a custom API base URL.
// Used for sovereign cloud endpoints and tests.
func NewClientWithBaseURL(tokens driven.TokenProvider, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    baseURL,
		tokens:     tokens,
		limiter:    rate.NewLimiter(rate.Limit(requestRate), 1),
	}
}

// TriggerRefresh submits an enhanced refresh request for the dataset.
// A nil error means the service accepted the request with 202; the refresh
// runs asynchronously on the service after that. Single attempt, no retry.
func (c *Client) TriggerRefresh(ctx context.Context, workspaceID, datasetID string, req domain.RefreshRequest) error {
	url := fmt.Sprintf("%s/groups/%s/datasets/%s/refreshes", c.baseURL, workspaceID, datasetID)

	body, err := json.Marshal(newRefreshPayload(req))
	if err != nil {
		return fmt.Errorf("encode refresh request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("trigger refresh: %w", err)
	}
	defer resp.Body.Close()

	respBody := readBody(resp.Body)
	logger.Info("Trigger refresh response: %d %s", resp.StatusCode, respBody)

	if resp.StatusCode != http.StatusAccepted {
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       respBody,
			URL:        url,
			op:         domain.ErrRefreshTrigger,
		}
	}
	return nil
}

// LatestRefresh returns the most recent entry of the dataset's refresh
// history ($top=1, ordered most-recent-first by the service).
func (c *Client) LatestRefresh(ctx context.Context, workspaceID, datasetID string) (*domain.RefreshRecord, error) {
	url := fmt.Sprintf("%s/groups/%s/datasets/%s/refreshes?$top=1", c.baseURL, workspaceID, datasetID)

	resp, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("query refresh history: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Body:       readBody(resp.Body),
			URL:        url,
			op:         domain.ErrStatusQuery,
		}
	}

	var history struct {
		Value []refreshEntry `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&history); err != nil {
		return nil, fmt.Errorf("%w: decode refresh history: %v", domain.ErrStatusQuery, err)
	}
	if len(history.Value) == 0 {
		return nil, domain.ErrNoRefreshHistory
	}
	return history.Value[0].toDomain(), nil
}

// do issues one authenticated request. Every call fetches a fresh token;
// tokens are not shared between the trigger and monitor operations.
func (c *Client) do(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	requestID := uuid.NewString()
	req.Header.Set("X-Client-Request-Id", requestID)
	logger.Debug("%s %s (request id %s)", method, url, requestID)

	return c.httpClient.Do(req)
}

// refreshPayload is the wire form of a refresh request. The objects field
// is omitted entirely for a full-model refresh.
type refreshPayload struct {
	Type           string                 `json:"type"`
	CommitMode     string                 `json:"commitMode"`
	MaxParallelism int                    `json:"maxParallelism"`
	RetryCount     int                    `json:"retryCount"`
	Timeout        string                 `json:"timeout"`
	Objects        []domain.RefreshObject `json:"objects,omitempty"`
}

func newRefreshPayload(req domain.RefreshRequest) refreshPayload {
	return refreshPayload{
		Type:           string(req.Type),
		CommitMode:     string(req.CommitMode),
		MaxParallelism: req.MaxParallelism,
		RetryCount:     req.RetryCount,
		Timeout:        req.TimeoutString(),
		Objects:        req.Objects,
	}
}

// refreshEntry is the wire form of one refresh history record.
type refreshEntry struct {
	RequestID            string    `json:"requestId"`
	RefreshType          string    `json:"refreshType"`
	Status               string    `json:"status"`
	StartTime            time.Time `json:"startTime"`
	EndTime              time.Time `json:"endTime"`
	ServiceExceptionJSON string    `json:"serviceExceptionJson"`
}

func (e refreshEntry) toDomain() *domain.RefreshRecord {
	status := domain.RefreshStatus(e.Status)
	if e.Status == "" {
		status = domain.StatusUnknown
	}
	return &domain.RefreshRecord{
		RequestID:            e.RequestID,
		RefreshType:          e.RefreshType,
		Status:               status,
		StartTime:            e.StartTime,
		EndTime:              e.EndTime,
		ServiceExceptionJSON: e.ServiceExceptionJSON,
	}
}

func readBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxBodyBytes))
	if err != nil {
		return ""
	}
	return string(data)
}
