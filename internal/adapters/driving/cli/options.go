package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pbiops/refreshctl/internal/adapters/driven/auth"
	"github.com/pbiops/refreshctl/internal/adapters/driven/config/file"
	"github.com/pbiops/refreshctl/internal/connectors/powerbi"
	"github.com/pbiops/refreshctl/internal/core/domain"
	"github.com/pbiops/refreshctl/internal/core/ports/driving"
	"github.com/pbiops/refreshctl/internal/core/services"
)

// Environment variables for the service principal. These take precedence
// over the config file; the secret has no config file fallback.
const (
	envClientID     = "PBIREFRESH_CLIENT_ID"
	envClientSecret = "PBIREFRESH_CLIENT_SECRET"
	envTenantID     = "PBIREFRESH_TENANT_ID"
)

// runSettings is everything a command needs for one invocation.
type runSettings struct {
	workspaceID  string
	datasetID    string
	pollInterval time.Duration
	request      domain.RefreshRequest
}

func loadConfig() (file.Config, error) {
	store, err := file.NewConfigStore(configDirFlag)
	if err != nil {
		return file.Config{}, err
	}
	return store.Load()
}

// resolveSettings merges flags over config file values.
func resolveSettings(cfg file.Config) (runSettings, error) {
	s := runSettings{
		workspaceID:  firstNonEmpty(workspaceFlag, cfg.WorkspaceID),
		datasetID:    firstNonEmpty(datasetFlag, cfg.DatasetID),
		pollInterval: pollIntervalFlag,
	}
	if s.pollInterval <= 0 {
		s.pollInterval = cfg.PollInterval()
	}

	req, err := cfg.RefreshRequest()
	if err != nil {
		return s, err
	}
	if commitModeFlag != "" {
		req.CommitMode = domain.CommitMode(commitModeFlag)
	}
	if maxParallelismFlag > 0 {
		req.MaxParallelism = maxParallelismFlag
	}
	if retryCountFlag >= 0 {
		req.RetryCount = retryCountFlag
	}
	if timeoutFlag > 0 {
		req.Timeout = timeoutFlag
	}

	objects, err := parseRefreshObjects(objectFlags)
	if err != nil {
		return s, err
	}
	req.Objects = objects
	s.request = req
	return s, nil
}

// parseRefreshObjects parses repeatable --object flags. Each value is a
// table name, optionally followed by a colon and a partition name.
func parseRefreshObjects(values []string) ([]domain.RefreshObject, error) {
	if len(values) == 0 {
		return nil, nil
	}
	objects := make([]domain.RefreshObject, 0, len(values))
	for _, v := range values {
		table, partition, _ := strings.Cut(v, ":")
		if strings.TrimSpace(table) == "" {
			return nil, fmt.Errorf("%w: object %q has no table name", domain.ErrInvalidInput, v)
		}
		objects = append(objects, domain.RefreshObject{
			Table:     strings.TrimSpace(table),
			Partition: strings.TrimSpace(partition),
		})
	}
	return objects, nil
}

// resolveOrchestrator returns the injected orchestrator (tests) or builds
// the real one: service principal -> token provider -> Power BI client.
func resolveOrchestrator(cmd *cobra.Command, cfg file.Config) (driving.RefreshOrchestrator, error) {
	if orchestrator != nil {
		return orchestrator, nil
	}

	principal, err := resolvePrincipal(cmd, cfg)
	if err != nil {
		return nil, err
	}
	tokens := auth.NewClientCredentialsProvider(principal)

	api := powerbi.NewClient(tokens)
	if cfg.APIBaseURL != "" {
		api = powerbi.NewClientWithBaseURL(tokens, cfg.APIBaseURL)
	}

	return services.NewRefreshOrchestrator(api), nil
}

// resolvePrincipal assembles the service principal from environment,
// config file and, for the secret only, an optional interactive prompt.
func resolvePrincipal(cmd *cobra.Command, cfg file.Config) (domain.ServicePrincipal, error) {
	p := domain.ServicePrincipal{
		ClientID:     firstNonEmpty(os.Getenv(envClientID), cfg.ClientID),
		ClientSecret: os.Getenv(envClientSecret),
		TenantID:     firstNonEmpty(os.Getenv(envTenantID), cfg.TenantID),
	}

	if p.ClientSecret == "" && promptSecretFlag {
		cmd.Print("Enter client secret: ")
		p.ClientSecret = readPassword()
		cmd.Println()
	}

	if err := p.Validate(); err != nil {
		return domain.ServicePrincipal{}, err
	}
	return p, nil
}

// printOutcome reports the final refresh outcome on stdout.
func printOutcome(cmd *cobra.Command, outcome *domain.RefreshOutcome) {
	cmd.Printf("Final status: %s\n", outcome.Status)
	cmd.Printf("Started at:   %s\n", outcome.StartedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("Finished at:  %s\n", outcome.FinishedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("Total refresh time: %.2f seconds\n", outcome.Elapsed().Seconds())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Read without echo when stdin is a terminal
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(secret)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
