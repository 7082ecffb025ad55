package indexer

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/wheelhouse/internal/config"
	"github.com/oshokin/wheelhouse/internal/domain/wheel"
	"github.com/oshokin/wheelhouse/internal/logger"
	"github.com/oshokin/wheelhouse/internal/repository/manifest"
)

// IndexFilename is the name of the generated page inside the output directory.
const IndexFilename = "index.html"

// outputFilePermissions applies to the generated page and directories.
const outputFilePermissions os.FileMode = 0o755

// wheelItem is one downloadable artifact row on the page.
type wheelItem struct {
	// URL is the release asset download link without the checksum fragment.
	URL string
	// Filename is the wheel file name used as link text.
	Filename string
	// Version is the wheel version caption.
	Version string
	// Size is the human-readable artifact size.
	Size string
	// SHA256 is the hex digest appended as a URL fragment for
	// client-side verification.
	SHA256 string
}

// packageGroup is one package section with its wheels in manifest order.
type packageGroup struct {
	// Name is the canonical package name.
	Name string
	// Wheels lists the package's artifacts, sorted by version then filename.
	Wheels []wheelItem
}

// pageData feeds the index template.
type pageData struct {
	// Title is the page heading.
	Title string
	// FindLinksURL, when set, renders the pip usage hint.
	FindLinksURL string
	// Packages holds the sections in lexicographic package order.
	Packages []packageGroup
}

// indexTemplate produces the find-links page. Autoescaping covers every
// manifest-supplied string.
var indexTemplate = template.Must(template.New(IndexFilename).Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { font-family: ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, monospace; max-width: 920px; margin: 2rem auto; padding: 0 1rem; line-height: 1.4; }
    h1 { margin-bottom: 0.25rem; }
    .meta { color: #5f6368; font-size: 0.95rem; margin-bottom: 1.5rem; }
    h2 { margin-top: 2rem; margin-bottom: 0.25rem; }
    ul { padding-left: 1.25rem; }
    li { margin: 0.5rem 0; }
    .details { color: #5f6368; font-size: 0.9rem; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
{{- if .FindLinksURL}}
  <p class="meta">Use with <code>pip install --no-index --find-links {{.FindLinksURL}} PACKAGE==VERSION</code></p>
{{- end}}
{{- if not .Packages}}
  <p>No wheels published yet.</p>
{{- else}}
{{- range .Packages}}
  <h2 id="{{.Name}}">{{.Name}}</h2>
  <ul>
{{- range .Wheels}}
    <li><a href="{{.URL}}#sha256={{.SHA256}}">{{.Filename}}</a> <span class="details">version {{.Version}}, {{.Size}}</span></li>
{{- end}}
  </ul>
{{- end}}
{{- end}}
</body>
</html>
`))

// Render produces the index page for the given manifest. Wheels are
// grouped by package in lexicographic order; within a group the manifest
// order (version, then filename) is preserved.
func Render(m *manifest.Manifest, cfg *config.Config) (string, error) {
	m.Sort()

	data := &pageData{
		Title:        cfg.IndexTitle,
		FindLinksURL: cfg.FindLinksURL,
		Packages:     nil,
	}

	for i := range m.Wheels {
		record := &m.Wheels[i]

		if len(data.Packages) == 0 || data.Packages[len(data.Packages)-1].Name != record.Package {
			data.Packages = append(data.Packages, packageGroup{Name: record.Package})
		}

		group := &data.Packages[len(data.Packages)-1]
		group.Wheels = append(group.Wheels, wheelItem{
			URL: fmt.Sprintf("%s/%s/releases/download/%s/%s",
				cfg.DownloadHost, m.Repo, record.ReleaseTag, record.Filename),
			Filename: record.Filename,
			Version:  record.Version,
			Size:     wheel.HumanSize(record.SizeBytes),
			SHA256:   record.SHA256,
		})
	}

	var builder strings.Builder
	if err := indexTemplate.Execute(&builder, data); err != nil {
		return "", fmt.Errorf("render index: %w", err)
	}

	return builder.String(), nil
}

// Build regenerates the output directory from the manifest: load, render,
// replace the directory wholesale, write the page. It returns the number
// of wheels indexed.
func Build(ctx context.Context, cfg *config.Config) (int, error) {
	ctx = logger.WithName(ctx, "indexer")

	store := manifest.NewFileRepository(cfg.ManifestPath)

	m, err := store.Load(ctx)
	if err != nil {
		return 0, err
	}

	page, err := Render(m, cfg)
	if err != nil {
		return 0, err
	}

	// Non-incremental: stale output never survives a rebuild.
	if err = os.RemoveAll(cfg.OutputDir); err != nil {
		return 0, fmt.Errorf("clear output directory: %w", err)
	}

	if err = os.MkdirAll(cfg.OutputDir, outputFilePermissions); err != nil {
		return 0, fmt.Errorf("create output directory: %w", err)
	}

	target := filepath.Join(cfg.OutputDir, IndexFilename)
	if err = os.WriteFile(target, []byte(page), manifest.DefaultFilePermissions); err != nil {
		return 0, fmt.Errorf("write index: %w", err)
	}

	logger.InfoKV(ctx, "Generated index", "path", target, "wheels", len(m.Wheels))

	return len(m.Wheels), nil
}
