package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/pbiops/refreshctl/internal/core/domain"
)

// Config holds the non-secret settings for refreshctl. Zero values mean
// "not configured"; Load fills unset fields from defaults.
type Config struct {
	// WorkspaceID is the default Power BI workspace (group) ID.
	WorkspaceID string `toml:"workspace_id"`
	// DatasetID is the default dataset ID.
	DatasetID string `toml:"dataset_id"`

	// TenantID and ClientID identify the service principal. The client
	// secret is intentionally absent; it is supplied via environment
	// variable or prompt.
	TenantID string `toml:"tenant_id"`
	ClientID string `toml:"client_id"`

	// PollIntervalSeconds is the delay between status polls.
	PollIntervalSeconds int `toml:"poll_interval_seconds"`

	// Refresh request defaults.
	CommitMode     string `toml:"commit_mode"`
	MaxParallelism int    `toml:"max_parallelism"`
	RetryCount     int    `toml:"retry_count"`
	// Timeout is the server-side refresh timeout hint, HH:MM:SS.
	Timeout string `toml:"timeout"`

	// APIBaseURL overrides the Power BI API base URL (sovereign clouds).
	APIBaseURL string `toml:"api_base_url"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		PollIntervalSeconds: 10,
		CommitMode:          string(domain.CommitModeTransactional),
		MaxParallelism:      2,
		RetryCount:          2,
		Timeout:             "02:00:00",
	}
}

// PollInterval returns the poll interval as a duration.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// RefreshRequest builds a refresh request from the configured defaults.
func (c Config) RefreshRequest() (domain.RefreshRequest, error) {
	req := domain.DefaultRefreshRequest()
	if c.CommitMode != "" {
		req.CommitMode = domain.CommitMode(c.CommitMode)
	}
	if c.MaxParallelism > 0 {
		req.MaxParallelism = c.MaxParallelism
	}
	if c.RetryCount >= 0 {
		req.RetryCount = c.RetryCount
	}
	if c.Timeout != "" {
		timeout, err := domain.ParseServerTimeout(c.Timeout)
		if err != nil {
			return domain.RefreshRequest{}, err
		}
		req.Timeout = timeout
	}
	return req, nil
}

// ConfigStore loads and saves the TOML config file.
type ConfigStore struct {
	mu       sync.Mutex
	filePath string
}

// NewConfigStore creates a config store rooted at configDir.
// If configDir is empty, defaults to ~/.refreshctl.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".refreshctl")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	return &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Load reads the config file, overlaying it on the defaults.
// A missing file yields the defaults without error.
func (s *ConfigStore) Load() (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := DefaultConfig()

	data, err := os.ReadFile(s.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config file with owner-only permissions.
func (s *ConfigStore) Save(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Path returns the config file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
