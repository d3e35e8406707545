package driven

import "context"

// TokenProvider supplies bearer access tokens for the Power BI REST API.
type TokenProvider interface {
	// GetToken returns a non-empty access token, performing a fresh
	// exchange with the identity provider on every call. Tokens are
	// deliberately not cached or shared between operations.
	GetToken(ctx context.Context) (string, error)
}
