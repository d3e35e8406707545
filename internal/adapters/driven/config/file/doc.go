// Package file stores refreshctl defaults in a TOML file under the user's
// config directory (~/.refreshctl/config.toml by default).
//
// Only non-secret settings live in the file: workspace and dataset IDs,
// tenant and client IDs, poll interval, refresh defaults and API base
// URLs. The client secret is never written to disk; it comes from the
// environment or an interactive prompt.
package file
