package domain

import (
	"fmt"
	"strings"
)

// ServicePrincipal holds the Entra ID application credentials used for the
// client-credentials token exchange. Supplied by the caller per invocation,
// conventionally sourced from a secret store, and never persisted here.
type ServicePrincipal struct {
	// ClientID is the application (client) ID of the service principal.
	ClientID string
	// ClientSecret is the application secret.
	ClientSecret string
	// TenantID identifies the Entra ID tenant (directory).
	TenantID string
}

// Validate checks that all credential fields are non-empty.
// Returns ErrInvalidInput naming every missing field.
func (p ServicePrincipal) Validate() error {
	var missing []string
	if strings.TrimSpace(p.ClientID) == "" {
		missing = append(missing, "client id")
	}
	if strings.TrimSpace(p.ClientSecret) == "" {
		missing = append(missing, "client secret")
	}
	if strings.TrimSpace(p.TenantID) == "" {
		missing = append(missing, "tenant id")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}
