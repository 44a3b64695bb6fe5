package platter

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/platterhq/platter/api"
	"github.com/platterhq/platter/domain"
)

// WithOptions applies a series of configuration functions to the dashboard.
// Each option function can modify the dashboard and return an error if it fails.
//
// Parameters:
//   - options: Variadic list of configuration functions
//
// Returns:
//   - error: First error encountered from any option function
func (d *Dashboard) WithOptions(options ...func(*Dashboard) error) error {
	for _, option := range options {
		err := option(d)
		if err != nil {
			return fmt.Errorf("applying option on dashboard : %w", err)
		}
	}
	return nil
}

// WithConfigDir configures the dashboard to use the specified configuration directory.
// It creates the directory if it doesn't exist, loads config.yaml through Viper (writing the
// defaults on first use) and points the dashboard at the configured remote collection.
//
// Parameters:
//   - appConfigDir: Path to the configuration directory
//
// Returns:
//   - func(*Dashboard) error: Option function that loads the configuration
func WithConfigDir(appConfigDir string) func(*Dashboard) error {
	return func(d *Dashboard) error {
		cfg, err := LoadConfig(appConfigDir)
		if err != nil {
			return fmt.Errorf("loading config from %s : %w", appConfigDir, err)
		}
		d.Config = cfg
		d.Repo = newRemote(cfg)
		return nil
	}
}

// WithBaseURL points the dashboard at the collection rooted at baseURL.
// When a config directory was loaded before, the new URL is persisted there.
//
// Parameters:
//   - baseURL: http or https root of the /foods collection
//
// Returns:
//   - func(*Dashboard) error: Option function that rebuilds the remote client
func WithBaseURL(baseURL string) func(*Dashboard) error {
	return func(d *Dashboard) error {
		if d.Config == nil {
			d.Config = DefaultConfig()
		}
		if err := d.Config.SetBaseURL(baseURL); err != nil {
			return fmt.Errorf("setting base url : %w", err)
		}
		d.Repo = newRemote(d.Config)
		return nil
	}
}

// WithRepo sets the remote food collection directly, bypassing the HTTP client.
//
// Parameters:
//   - repo: Food collection implementation; must not be nil
//
// Returns:
//   - func(*Dashboard) error: Option function that sets the repository
func WithRepo(repo domain.FoodRepository) func(*Dashboard) error {
	return func(d *Dashboard) error {
		if repo == nil {
			return errors.New("repository is nil")
		}
		d.Repo = repo
		return nil
	}
}

// WithLogger sets the logger used to report failed remote calls.
// A nil logger keeps the default one.
func WithLogger(logger *slog.Logger) func(*Dashboard) error {
	return func(d *Dashboard) error {
		if logger != nil {
			d.Logger = logger
		}
		return nil
	}
}

// WithChangeHandler takes a handler that will be executed after every local mutation of the list.
// The handler receives a copy of the list and runs outside the dashboard's lock.
//
// Parameters:
//   - handler: Function called with the updated list
//
// Returns:
//   - func(*Dashboard) error: Option function that sets the handler, failing if one is already set
func WithChangeHandler(handler func(foods []domain.Food)) func(*Dashboard) error {
	return func(d *Dashboard) error {
		if d.OnChange != nil {
			return errors.New("dashboard already has a change handler defined")
		}
		d.OnChange = handler
		return nil
	}
}

// newRemote builds the HTTP client for the collection described by cfg.
func newRemote(cfg *Config) *api.Client {
	httpClient := &http.Client{
		Transport: NewTransport(nil, cfg.UserAgent),
		Timeout:   cfg.Timeout,
	}
	return api.New(cfg.BaseURL, api.WithHTTPClient(httpClient))
}
