package powerbi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbiops/refreshctl/internal/adapters/driven/auth"
	"github.com/pbiops/refreshctl/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClientWithBaseURL(auth.NewStaticProvider("test-token"), server.URL)
}

func TestTriggerRefresh_FullModelOmitsObjects(t *testing.T) {
	var gotBody map[string]json.RawMessage
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/groups/ws1/datasets/ds1/refreshes", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Client-Request-Id"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &gotBody))

		w.WriteHeader(http.StatusAccepted)
	})

	err := client.TriggerRefresh(context.Background(), "ws1", "ds1", domain.DefaultRefreshRequest())
	require.NoError(t, err)

	assert.NotContains(t, gotBody, "objects")
	assert.JSONEq(t, `"Full"`, string(gotBody["type"]))
	assert.JSONEq(t, `"transactional"`, string(gotBody["commitMode"]))
	assert.JSONEq(t, `2`, string(gotBody["maxParallelism"]))
	assert.JSONEq(t, `2`, string(gotBody["retryCount"]))
	assert.JSONEq(t, `"02:00:00"`, string(gotBody["timeout"]))
}

func TestTriggerRefresh_SelectiveObjectsVerbatim(t *testing.T) {
	var got struct {
		Objects []domain.RefreshObject `json:"objects"`
	}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	})

	req := domain.DefaultRefreshRequest()
	req.Objects = []domain.RefreshObject{
		{Table: "DimCustomer", Partition: "DimCustomer"},
		{Table: "DimDate"},
	}

	err := client.TriggerRefresh(context.Background(), "ws1", "ds1", req)
	require.NoError(t, err)

	// Order preserved, partitions only where given
	assert.Equal(t, req.Objects, got.Objects)
}

func TestTriggerRefresh_NonAcceptedStatus(t *testing.T) {
	tests := []int{
		http.StatusBadRequest,
		http.StatusUnauthorized,
		http.StatusNotFound,
		http.StatusConflict,
		http.StatusTooManyRequests,
	}

	for _, code := range tests {
		t.Run(http.StatusText(code), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(code)
				fmt.Fprint(w, `{"error":{"code":"refreshFailure"}}`)
			})

			err := client.TriggerRefresh(context.Background(), "ws1", "ds1", domain.DefaultRefreshRequest())
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrRefreshTrigger)
			assert.Contains(t, err.Error(), fmt.Sprintf("status %d", code))

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, code, apiErr.StatusCode)
			assert.Contains(t, apiErr.Body, "refreshFailure")
		})
	}
}

func TestTriggerRefresh_TokenFailureIsFatal(t *testing.T) {
	reached := false
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		reached = true
	}))
	defer server.Close()

	client := NewClientWithBaseURL(auth.NewStaticProvider(""), server.URL)

	err := client.TriggerRefresh(context.Background(), "ws1", "ds1", domain.DefaultRefreshRequest())
	assert.ErrorIs(t, err, domain.ErrAuthentication)
	assert.False(t, reached, "no request should reach the API without a token")
}

func TestLatestRefresh(t *testing.T) {
	started := time.Date(2026, 8, 30, 9, 25, 43, 0, time.UTC)
	ended := started.Add(7 * time.Minute)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/groups/ws1/datasets/ds1/refreshes", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("$top"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"value": []map[string]any{
				{
					"requestId":   "req-123",
					"refreshType": "ViaEnhancedApi",
					"status":      "Completed",
					"startTime":   started.Format(time.RFC3339),
					"endTime":     ended.Format(time.RFC3339),
				},
				{
					"requestId": "req-older",
					"status":    "Failed",
				},
			},
		})
	})

	record, err := client.LatestRefresh(context.Background(), "ws1", "ds1")
	require.NoError(t, err)

	// Only the first (most recent) entry is read
	assert.Equal(t, "req-123", record.RequestID)
	assert.Equal(t, domain.StatusCompleted, record.Status)
	assert.True(t, record.StartTime.Equal(started))
	assert.True(t, record.EndTime.Equal(ended))
}

func TestLatestRefresh_MissingStatusDefaultsToUnknown(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"value":[{"requestId":"req-1"}]}`)
	})

	record, err := client.LatestRefresh(context.Background(), "ws1", "ds1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnknown, record.Status)
	assert.False(t, record.Status.IsTerminal())
}

func TestLatestRefresh_EmptyHistory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"value":[]}`)
	})

	_, err := client.LatestRefresh(context.Background(), "ws1", "ds1")
	assert.ErrorIs(t, err, domain.ErrNoRefreshHistory)
}

func TestLatestRefresh_NonOKStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, "insufficient permissions")
	})

	_, err := client.LatestRefresh(context.Background(), "ws1", "ds1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStatusQuery)
	assert.Contains(t, err.Error(), "status 403")
	assert.Contains(t, err.Error(), "insufficient permissions")
}

func TestAPIErrorHelpers(t *testing.T) {
	unauthorized := &APIError{StatusCode: 401, op: domain.ErrStatusQuery}
	notFound := &APIError{StatusCode: 404, op: domain.ErrRefreshTrigger}
	throttled := &APIError{StatusCode: 429, op: domain.ErrRefreshTrigger}

	assert.True(t, IsUnauthorized(unauthorized))
	assert.False(t, IsUnauthorized(notFound))
	assert.True(t, IsNotFound(notFound))
	assert.True(t, IsThrottled(throttled))
	assert.False(t, IsThrottled(notFound))
}
