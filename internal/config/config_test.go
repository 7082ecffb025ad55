package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLoad_MissingFileYieldsDefaults ensures the settings file is optional.
func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

// TestLoad_OverridesAndDefaults ensures file values win and gaps are filled.
func TestLoad_OverridesAndDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "wheelhouse.yaml")
	contents := "manifest_path: custom.json\nfind_links_url: https://whl.example.dev/\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "custom.json", cfg.ManifestPath)
	require.Equal(t, "https://whl.example.dev/", cfg.FindLinksURL)
	require.Equal(t, DefaultOutputDir, cfg.OutputDir)
	require.Equal(t, DefaultDownloadHost, cfg.DownloadHost)
}

// TestSaveLoad_Roundtrip ensures Save followed by Load returns equal settings.
func TestSaveLoad_Roundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "wheelhouse.yaml")
	want := Default()
	want.IndexTitle = "Internal Wheels"

	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// TestValidate_Rejections covers required fields and URL checks.
func TestValidate_Rejections(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.ManifestPath = ""
	require.Error(t, Validate(cfg))

	cfg = Default()
	cfg.OutputDir = ""
	require.Error(t, Validate(cfg))

	cfg = Default()
	cfg.DownloadHost = "not a url"
	require.Error(t, Validate(cfg))

	cfg = Default()
	cfg.FindLinksURL = "not a url"
	require.Error(t, Validate(cfg))
}

// TestValidate_TrimsHostSlash ensures trailing slashes do not double up in links.
func TestValidate_TrimsHostSlash(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.DownloadHost = "https://github.com/"
	require.NoError(t, Validate(cfg))
	require.Equal(t, "https://github.com", cfg.DownloadHost)
}
