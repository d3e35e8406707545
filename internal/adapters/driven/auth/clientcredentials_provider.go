package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/pbiops/refreshctl/internal/core/domain"
	"github.com/pbiops/refreshctl/internal/core/ports/driven"
	"github.com/pbiops/refreshctl/internal/logger"
)

const (
	// authorityBase is the Entra ID token authority.
	authorityBase = "https://login.microsoftonline.com"

	// Scope is the fixed Power BI API scope requested for every token.
	Scope = "https://analysis.windows.net/powerbi/api/.default"
)

// Ensure ClientCredentialsProvider implements the TokenProvider port.
var _ driven.TokenProvider = (*ClientCredentialsProvider)(nil)

// ClientCredentialsProvider exchanges a service principal for a bearer
// token using the OAuth2 client-credentials flow. No user interaction
// and no token caching: every GetToken call is a fresh exchange, so the
// trigger and monitor operations never share a token.
type ClientCredentialsProvider struct {
	principal domain.ServicePrincipal
	tokenURL  string
}

// NewClientCredentialsProvider creates a provider whose token endpoint is
// derived from the principal's tenant ID.
func NewClientCredentialsProvider(principal domain.ServicePrincipal) *ClientCredentialsProvider {
	return &ClientCredentialsProvider{
		principal: principal,
		tokenURL:  fmt.Sprintf("%s/%s/oauth2/v2.0/token", authorityBase, principal.TenantID),
	}
}

// NewClientCredentialsProviderWithTokenURL creates a provider against an
// explicit token endpoint. Used for sovereign clouds and tests.
func NewClientCredentialsProviderWithTokenURL(principal domain.ServicePrincipal, tokenURL string) *ClientCredentialsProvider {
	return &ClientCredentialsProvider{
		principal: principal,
		tokenURL:  tokenURL,
	}
}

// GetToken performs the client-credentials exchange and returns the
// access token. Any failure, including a response without an access
// token, wraps domain.ErrAuthentication. No retry; failure is fatal to
// the calling operation.
func (p *ClientCredentialsProvider) GetToken(ctx context.Context) (string, error) {
	if err := p.principal.Validate(); err != nil {
		return "", err
	}

	cfg := &clientcredentials.Config{
		ClientID:     p.principal.ClientID,
		ClientSecret: p.principal.ClientSecret,
		TokenURL:     p.tokenURL,
		Scopes:       []string{Scope},
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	tok, err := cfg.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAuthentication, err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("%w: token response has no access token", domain.ErrAuthentication)
	}

	logger.Info("Access token acquired for tenant %s", p.principal.TenantID)
	return tok.AccessToken, nil
}
