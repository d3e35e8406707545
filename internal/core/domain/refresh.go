package domain

import (
	"fmt"
	"strings"
	"time"
)

// RefreshStatus is the status string the service reports for a refresh.
// Values are compared case-insensitively; the service is not consistent
// about casing across API versions.
type RefreshStatus string

// Known refresh statuses. The service may introduce new values; anything
// that is not Unknown or InProgress is treated as terminal.
const (
	StatusUnknown    RefreshStatus = "Unknown"
	StatusInProgress RefreshStatus = "InProgress"
	StatusCompleted  RefreshStatus = "Completed"
	StatusFailed     RefreshStatus = "Failed"
	StatusCancelled  RefreshStatus = "Cancelled"
	StatusDisabled   RefreshStatus = "Disabled"
)

// IsTerminal reports whether polling should stop on this status.
// Unknown and InProgress keep the poll loop running; everything else,
// including statuses this package does not know about, ends it.
func (s RefreshStatus) IsTerminal() bool {
	switch strings.ToLower(string(s)) {
	case "unknown", "inprogress":
		return false
	}
	return true
}

// RefreshType selects the kind of data refresh.
type RefreshType string

// RefreshTypeFull reloads the data for the targeted objects in full.
const RefreshTypeFull RefreshType = "Full"

// CommitMode controls how the service applies partial refresh results.
type CommitMode string

// Commit modes accepted by the enhanced refresh API.
const (
	CommitModeTransactional CommitMode = "transactional"
	CommitModePartialBatch  CommitMode = "partialBatch"
)

// RefreshObject names a table, and optionally one of its partitions,
// to include in a selective refresh.
type RefreshObject struct {
	Table     string `json:"table"`
	Partition string `json:"partition,omitempty"`
}

// RefreshRequest describes a refresh submission. The Timeout is a hint to
// the server, not a local deadline. An empty Objects list means the entire
// model is refreshed and the objects field is omitted from the payload.
type RefreshRequest struct {
	Type           RefreshType
	CommitMode     CommitMode
	MaxParallelism int
	RetryCount     int
	Timeout        time.Duration
	Objects        []RefreshObject
}

// DefaultRefreshRequest returns a full-model request with the defaults
// used for enhanced refresh: transactional commit, parallelism 2,
// retry count 2 and a two hour server-side timeout.
func DefaultRefreshRequest() RefreshRequest {
	return RefreshRequest{
		Type:           RefreshTypeFull,
		CommitMode:     CommitModeTransactional,
		MaxParallelism: 2,
		RetryCount:     2,
		Timeout:        2 * time.Hour,
	}
}

// IsFullModel reports whether the request refreshes the whole model.
func (r RefreshRequest) IsFullModel() bool {
	return len(r.Objects) == 0
}

// TimeoutString renders the server-side timeout in the HH:MM:SS form
// the refresh API expects.
func (r RefreshRequest) TimeoutString() string {
	return FormatServerTimeout(r.Timeout)
}

// FormatServerTimeout renders a duration as HH:MM:SS.
func FormatServerTimeout(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	return fmt.Sprintf("%02d:%02d:%02d", h, m, d/time.Second)
}

// ParseServerTimeout parses an HH:MM:SS string into a duration.
func ParseServerTimeout(s string) (time.Duration, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		return 0, fmt.Errorf("%w: timeout %q is not HH:MM:SS", ErrInvalidInput, s)
	}
	if h < 0 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("%w: timeout %q is not HH:MM:SS", ErrInvalidInput, s)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
}

// RefreshRecord is a single entry of a dataset's refresh history as
// returned by the service. EndTime is zero while the refresh is running.
type RefreshRecord struct {
	RequestID            string
	RefreshType          string
	Status               RefreshStatus
	StartTime            time.Time
	EndTime              time.Time
	ServiceExceptionJSON string
}

// RefreshOutcome is the locally observed result of monitoring one refresh.
// StartedAt and FinishedAt are wall-clock times of the first poll and of
// the terminal observation, not the server-side refresh times.
type RefreshOutcome struct {
	Status     RefreshStatus
	StartedAt  time.Time
	FinishedAt time.Time
	Polls      int
}

// Elapsed returns the wall-clock time spent polling.
func (o RefreshOutcome) Elapsed() time.Duration {
	return o.FinishedAt.Sub(o.StartedAt)
}
