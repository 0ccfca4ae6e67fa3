// Package config provides the configuration loader for embedcache.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anneal-lab/embedcache/internal/core/domain"
	"github.com/anneal-lab/embedcache/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads embedcache.yaml from cwd. A missing file yields domain.DefaultConfig().
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	path := filepath.Join(cwd, domain.ConfigFileName)

	data, err := os.ReadFile(path) //nolint:gosec // path is built from the working directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	if l.Logger != nil {
		l.Logger.Info("loaded configuration from " + path)
	}
	return cfg, nil
}

// Parse decodes a configuration document on top of the defaults and validates it.
func Parse(data []byte) (*domain.Config, error) {
	var file Configfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	cfg := domain.DefaultConfig()
	if file.Version != "" {
		cfg.Version = file.Version
	}
	if file.CacheDir != nil {
		cfg.CacheDir = strings.TrimSpace(*file.CacheDir)
	}
	if file.Topology != nil {
		cfg.Topology = strings.TrimSpace(*file.Topology)
	}
	if file.Search != nil {
		if file.Search.Timeout != nil {
			d, err := time.ParseDuration(*file.Search.Timeout)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidConfig.Error()), "field", "search.timeout")
			}
			cfg.Search.Timeout = d
		}
		if file.Search.RasterBreadth != nil {
			cfg.Search.RasterBreadth = *file.Search.RasterBreadth
		}
		if file.Search.MaxNumEmb != nil {
			cfg.Search.MaxNumEmb = *file.Search.MaxNumEmb
		}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *domain.Config) error {
	if cfg.CacheDir == "" {
		return zerr.With(domain.ErrInvalidConfig, "field", "cache_dir")
	}
	if err := cfg.Search.Validate(); err != nil {
		return zerr.Wrap(err, domain.ErrInvalidConfig.Error())
	}
	return nil
}
