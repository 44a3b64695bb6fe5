package platter

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config" // Config file name, without extension
	configType = "yaml"   // Config file format

	// DefaultBaseURL is the collection root used when nothing else is configured.
	DefaultBaseURL = "http://localhost:3333"
	// DefaultTimeout bounds every remote call.
	DefaultTimeout = 10 * time.Second
)

// Config holds the dashboard settings persisted in the config directory.
type Config struct {
	viper     *viper.Viper
	ConfigDir string        `mapstructure:"-"`          // Directory holding config.yaml
	BaseURL   string        `mapstructure:"base_url"`   // Root of the remote food collection
	Timeout   time.Duration `mapstructure:"timeout"`    // Per-request timeout
	UserAgent string        `mapstructure:"user_agent"` // Overrides the default User-Agent when set
}

// DefaultConfig returns the settings used when no config directory is given.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// LoadConfig reads config.yaml from dir, creating the directory and a default file when missing.
// Values can be overridden through PLATTER_ prefixed environment variables, e.g. PLATTER_BASE_URL.
func LoadConfig(dir string) (*Config, error) {
	_, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			err := os.MkdirAll(dir, 0700)
			if err != nil {
				return nil, fmt.Errorf("creating config dir %s: %w", dir, err)
			}
		} else {
			return nil, fmt.Errorf("checking if directory exists %s: %w", dir, err)
		}
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("timeout", DefaultTimeout.String())
	v.SetDefault("user_agent", "")
	v.SetEnvPrefix("PLATTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if err := v.SafeWriteConfig(); err != nil {
				return nil, fmt.Errorf("writing config file : %w", err)
			}
		} else {
			return nil, fmt.Errorf("reading config file : %w", err)
		}
	}

	cfg := &Config{viper: v, ConfigDir: dir}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config to struct : %w", err)
	}
	if err := validateBaseURL(cfg.BaseURL); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetBaseURL validates and persists a new collection root.
func (cfg *Config) SetBaseURL(baseURL string) error {
	baseURL = strings.TrimRight(baseURL, "/")
	if err := validateBaseURL(baseURL); err != nil {
		return err
	}
	cfg.BaseURL = baseURL
	return cfg.save("base_url", baseURL)
}

// SetTimeout persists a new per-request timeout.
func (cfg *Config) SetTimeout(timeout time.Duration) error {
	if timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", timeout)
	}
	cfg.Timeout = timeout
	return cfg.save("timeout", timeout.String())
}

func (cfg *Config) save(key string, value any) error {
	if cfg.viper == nil {
		return nil
	}
	cfg.viper.Set(key, value)
	if err := cfg.viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}

func validateBaseURL(baseURL string) error {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("parsing base url %q: %w", baseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base url %q must use http or https", baseURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("base url %q has no host", baseURL)
	}
	return nil
}
