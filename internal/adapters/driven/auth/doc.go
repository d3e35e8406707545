// Package auth implements the TokenProvider port. The primary provider
// performs the OAuth2 client-credentials exchange against Entra ID; a
// static provider wraps a pre-acquired token for tests and tooling.
package auth
