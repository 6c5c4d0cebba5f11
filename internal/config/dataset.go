package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/packcal/internal/common"
	"github.com/spf13/viper"
)

// DefaultDatasetTimeout bounds a remote dataset fetch when nothing is configured.
const DefaultDatasetTimeout = 15 * time.Second

// DatasetConfig locates the base dataset.
type DatasetConfig struct {
	Source  string
	Timeout time.Duration
}

// DefaultDatasetConfig returns the configuration used when nothing is set.
func DefaultDatasetConfig() DatasetConfig {
	return DatasetConfig{Timeout: DefaultDatasetTimeout}
}

// Validate checks that the configuration is usable.
func (c DatasetConfig) Validate() error {
	if strings.TrimSpace(c.Source) == "" {
		return fmt.Errorf("%w: dataset.source is not set (use --dataset, PACKCAL_DATASET or the config file)", common.ErrMissingConfig)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: dataset.timeout must be positive, got %s", common.ErrInvalidConfig, c.Timeout)
	}
	if c.IsRemote() {
		u, err := url.Parse(c.Source)
		if err != nil || u.Host == "" {
			return fmt.Errorf("%w: dataset.source %q is not a valid URL", common.ErrInvalidConfig, c.Source)
		}
	}
	return nil
}

// IsRemote reports whether Source is an http(s) URL.
func (c DatasetConfig) IsRemote() bool {
	return strings.HasPrefix(c.Source, "http://") || strings.HasPrefix(c.Source, "https://")
}

// LoadDatasetConfig loads dataset configuration from Viper and environment variables.
// It follows this precedence:
// 1. Viper configuration (from config file, flags or PACKCAL_ env vars)
// 2. Direct environment variable (PACKCAL_DATASET)
// 3. Default values
func LoadDatasetConfig() (*DatasetConfig, error) {
	config := DefaultDatasetConfig()

	// Load from Viper first
	if v := viper.GetString("dataset.source"); v != "" {
		config.Source = v
	}
	if v := viper.GetDuration("dataset.timeout"); v != 0 {
		config.Timeout = v
	}

	// Override with direct environment variables if not set
	if config.Source == "" {
		config.Source = os.Getenv("PACKCAL_DATASET")
	}

	if !config.IsRemote() {
		config.Source = ExpandPath(config.Source)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
