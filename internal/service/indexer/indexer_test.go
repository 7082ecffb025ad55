package indexer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/wheelhouse/internal/config"
	"github.com/oshokin/wheelhouse/internal/domain/wheel"
	"github.com/oshokin/wheelhouse/internal/repository/manifest"
)

// testManifest returns a manifest with wheels for the given packages.
func testManifest(packages ...string) *manifest.Manifest {
	m := &manifest.Manifest{Repo: "oshokin/wheelhouse", Wheels: []wheel.Record{}}
	for _, pkg := range packages {
		m.Wheels = append(m.Wheels, wheel.Record{
			Filename:   pkg + "-1.0.0-py3-none-any.whl",
			Package:    pkg,
			ReleaseTag: "v1",
			SHA256:     strings.Repeat("cd", 32),
			SizeBytes:  1536,
			Version:    "1.0.0",
		})
	}

	return m
}

// TestRender_Empty ensures an empty manifest renders the placeholder only.
func TestRender_Empty(t *testing.T) {
	t.Parallel()

	page, err := Render(manifest.New(), config.Default())
	require.NoError(t, err)
	require.Contains(t, page, "No wheels published yet.")
	require.NotContains(t, page, "<h2")
}

// TestRender_GroupsAndOrder ensures packages appear as sections in
// lexicographic order with download links and captions.
func TestRender_GroupsAndOrder(t *testing.T) {
	t.Parallel()

	page, err := Render(testManifest("zeta", "alpha"), config.Default())
	require.NoError(t, err)

	alphaAt := strings.Index(page, `<h2 id="alpha">`)
	zetaAt := strings.Index(page, `<h2 id="zeta">`)
	require.GreaterOrEqual(t, alphaAt, 0)
	require.GreaterOrEqual(t, zetaAt, 0)
	require.Less(t, alphaAt, zetaAt)

	require.Contains(t, page,
		"https://github.com/oshokin/wheelhouse/releases/download/v1/alpha-1.0.0-py3-none-any.whl#sha256="+strings.Repeat("cd", 32))
	require.Contains(t, page, "version 1.0.0, 1.5 KB")
}

// TestRender_Idempotent ensures rendering the same manifest twice is byte-identical.
func TestRender_Idempotent(t *testing.T) {
	t.Parallel()

	m := testManifest("alpha", "zeta", "beta")
	cfg := config.Default()

	first, err := Render(m, cfg)
	require.NoError(t, err)

	second, err := Render(m, cfg)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

// TestRender_EscapesUserStrings ensures manifest-supplied strings cannot
// inject markup into the page.
func TestRender_EscapesUserStrings(t *testing.T) {
	t.Parallel()

	m := &manifest.Manifest{
		Repo: "oshokin/wheelhouse",
		Wheels: []wheel.Record{{
			Filename:   `<script>alert(1)</script>-1-py3-none-any.whl`,
			Package:    `<b>bold</b>`,
			ReleaseTag: "v1",
			SHA256:     strings.Repeat("ab", 32),
			SizeBytes:  1,
			Version:    `1.0.0"><script>`,
		}},
	}

	page, err := Render(m, config.Default())
	require.NoError(t, err)
	require.NotContains(t, page, "<script>")
	require.NotContains(t, page, "<b>bold</b>")
}

// TestRender_PipHint ensures the find-links hint appears only when configured.
func TestRender_PipHint(t *testing.T) {
	t.Parallel()

	cfg := config.Default()

	page, err := Render(manifest.New(), cfg)
	require.NoError(t, err)
	require.NotContains(t, page, "--find-links")

	cfg.FindLinksURL = "https://whl.example.dev/"

	page, err = Render(manifest.New(), cfg)
	require.NoError(t, err)
	require.Contains(t, page, "pip install --no-index --find-links https://whl.example.dev/")
}

// TestBuild_WritesIndexAndReplacesOutput ensures Build regenerates dist/ wholesale.
func TestBuild_WritesIndexAndReplacesOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.ManifestPath = filepath.Join(dir, "wheels.json")
	cfg.OutputDir = filepath.Join(dir, "dist")

	store := manifest.NewFileRepository(cfg.ManifestPath)
	require.NoError(t, store.Save(context.Background(), testManifest("alpha")))

	// Stale output must not survive a rebuild.
	require.NoError(t, os.MkdirAll(cfg.OutputDir, 0o755))
	stale := filepath.Join(cfg.OutputDir, "stale.html")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o600))

	count, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	_, err = os.Stat(stale)
	require.ErrorIs(t, err, os.ErrNotExist)

	page, err := os.ReadFile(filepath.Join(cfg.OutputDir, IndexFilename))
	require.NoError(t, err)
	require.Contains(t, string(page), `<h2 id="alpha">`)
}

// TestBuild_WheelsWithoutRepoFails ensures a manifest with wheels but no
// repo aborts index generation.
func TestBuild_WheelsWithoutRepoFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.ManifestPath = filepath.Join(dir, "wheels.json")
	cfg.OutputDir = filepath.Join(dir, "dist")

	contents := `{"repo": "", "wheels": [{"filename": "a-1-py3-none-any.whl", "package": "a", "release_tag": "v1", "sha256": "` +
		strings.Repeat("ab", 32) + `", "size_bytes": 1, "version": "1"}]}` + "\n"
	require.NoError(t, os.WriteFile(cfg.ManifestPath, []byte(contents), 0o600))

	_, err := Build(context.Background(), cfg)
	require.ErrorIs(t, err, manifest.ErrCorrupt)
}
