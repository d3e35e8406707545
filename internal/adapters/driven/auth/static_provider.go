package auth

import (
	"context"

	"github.com/pbiops/refreshctl/internal/core/domain"
	"github.com/pbiops/refreshctl/internal/core/ports/driven"
)

// Ensure StaticProvider implements the TokenProvider port.
var _ driven.TokenProvider = (*StaticProvider)(nil)

// StaticProvider returns a fixed, pre-acquired token. Used in tests and
// when the caller already holds a token from elsewhere.
type StaticProvider struct {
	token string
}

// NewStaticProvider creates a provider for a pre-acquired token.
func NewStaticProvider(token string) *StaticProvider {
	return &StaticProvider{token: token}
}

// GetToken returns the fixed token.
func (p *StaticProvider) GetToken(_ context.Context) (string, error) {
	if p.token == "" {
		return "", domain.ErrAuthentication
	}
	return p.token, nil
}
