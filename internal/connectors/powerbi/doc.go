// Package powerbi implements the RefreshAPI port against the Power BI
// REST API (v1.0 "myorg" surface): triggering enhanced dataset refreshes
// and reading a dataset's refresh history.
//
// The client is short-lived and scoped to one operation. It fetches a
// bearer token from its TokenProvider for every request and performs no
// retries; any non-success response is surfaced to the caller as an
// APIError.
package powerbi
