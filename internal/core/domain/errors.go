package domain

import "errors"

// Domain errors represent failures in the refresh flow.
// Every failure is fatal to the invocation; there is no local retry.
var (
	// ErrInvalidInput indicates a missing or empty credential or identifier.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAuthentication indicates the token exchange with the identity
	// provider failed or returned no access token.
	ErrAuthentication = errors.New("authentication failed")

	// ErrRefreshTrigger indicates the refresh request was not accepted
	// by the service (any response other than 202).
	ErrRefreshTrigger = errors.New("refresh trigger rejected")

	// ErrStatusQuery indicates the refresh status query failed
	// (any response other than 200). Polling aborts.
	ErrStatusQuery = errors.New("refresh status query failed")

	// ErrNoRefreshHistory indicates the service returned an empty refresh
	// history for the dataset, so there is no record to monitor.
	ErrNoRefreshHistory = errors.New("no refresh history for dataset")
)
