package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the wheelhouse binaries.
type Config struct {
	// ManifestPath is the location of the wheels manifest JSON file.
	ManifestPath string `yaml:"manifest_path"`
	// OutputDir is the directory the index generator writes into.
	OutputDir string `yaml:"output_dir"`
	// DownloadHost is the base URL download links are built against.
	DownloadHost string `yaml:"download_host"`
	// IndexTitle is the heading and <title> of the generated index page.
	IndexTitle string `yaml:"index_title"`
	// FindLinksURL is the public URL of the index, shown in the pip hint.
	FindLinksURL string `yaml:"find_links_url"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "wheelhouse.yaml"

	// DefaultManifestFilename is the default filename for the wheel manifest.
	DefaultManifestFilename = "wheels.json"

	// DefaultOutputDir is the directory the static index is generated into.
	DefaultOutputDir = "dist"

	// DefaultDownloadHost is where release assets are downloaded from.
	DefaultDownloadHost = "https://github.com"

	// DefaultIndexTitle is the heading of the generated index page.
	DefaultIndexTitle = "Python Wheels"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errManifestPathRequired is returned when the manifest path is blanked out.
	errManifestPathRequired = errors.New("manifest path must be provided")
	// errOutputDirRequired is returned when the output directory is blanked out.
	errOutputDirRequired = errors.New("output directory must be provided")
)

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		ManifestPath: DefaultManifestFilename,
		OutputDir:    DefaultOutputDir,
		DownloadHost: DefaultDownloadHost,
		IndexTitle:   DefaultIndexTitle,
		FindLinksURL: "",
	}
}

// Load reads configuration from the provided path and validates it.
// The settings file is optional: a missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err = yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the configuration for required fields and formatting,
// filling trivial gaps with defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.ManifestPath == "" {
		return errManifestPathRequired
	}

	if cfg.OutputDir == "" {
		return errOutputDirRequired
	}

	if cfg.DownloadHost == "" {
		cfg.DownloadHost = DefaultDownloadHost
	}

	cfg.DownloadHost = strings.TrimRight(cfg.DownloadHost, "/")

	if _, err := url.ParseRequestURI(cfg.DownloadHost); err != nil {
		return fmt.Errorf("invalid download host: %w", err)
	}

	if cfg.IndexTitle == "" {
		cfg.IndexTitle = DefaultIndexTitle
	}

	if cfg.FindLinksURL == "" {
		return nil
	}

	if _, err := url.ParseRequestURI(cfg.FindLinksURL); err != nil {
		return fmt.Errorf("invalid find-links URL: %w", err)
	}

	return nil
}
