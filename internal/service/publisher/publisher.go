package publisher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/wheelhouse/internal/config"
	"github.com/oshokin/wheelhouse/internal/domain/wheel"
	"github.com/oshokin/wheelhouse/internal/logger"
	"github.com/oshokin/wheelhouse/internal/release"
	"github.com/oshokin/wheelhouse/internal/repository/manifest"
	"github.com/oshokin/wheelhouse/internal/service/indexer"
)

// Options contains inputs for the publish entry point.
type Options struct {
	// ConfigPath is an optional path to the settings file (defaults to wheelhouse.yaml).
	ConfigPath string
	// ArtifactPaths lists the wheel files to publish.
	ArtifactPaths []string
	// Tag is the release tag to create.
	Tag string
	// Title is the release title; empty defaults to Tag.
	Title string
	// Notes is the release description body.
	Notes string
	// Repo optionally overrides repository resolution, in owner/name form.
	Repo string
	// Releaser creates the release; nil selects the gh CLI client.
	Releaser release.Releaser
	// InferRepo looks up the ambient version-control remote; nil selects
	// the git-based inference.
	InferRepo func(ctx context.Context) string
}

// DefaultNotes is the release body used when none is provided.
const DefaultNotes = "Automated wheel release."

var (
	// ErrMissingArtifact is returned when input files are absent; the
	// message lists every missing path at once.
	ErrMissingArtifact = errors.New("missing wheel files")

	// ErrRepoUnresolved is returned when no source supplies a repository identifier.
	ErrRepoUnresolved = errors.New("repository could not be resolved, pass --repo owner/name")

	// errTagRequired is returned when no release tag is provided.
	errTagRequired = errors.New("release tag must be provided")
)

// publisher carries the resolved collaborators for one publish run.
type publisher struct {
	// cfg holds the effective settings.
	cfg *config.Config
	// store persists the manifest.
	store *manifest.FileRepository
	// releaser uploads the artifacts under a tag.
	releaser release.Releaser
	// inferRepo queries the ambient version-control remote.
	inferRepo func(ctx context.Context) string
	// opts are the caller-supplied inputs.
	opts *Options
}

// Run executes the publish workflow.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "publisher")

	if opts.Tag == "" {
		return errTagRequired
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	pub := &publisher{
		cfg:       cfg,
		store:     manifest.NewFileRepository(cfg.ManifestPath),
		releaser:  opts.Releaser,
		inferRepo: opts.InferRepo,
		opts:      opts,
	}

	if pub.releaser == nil {
		pub.releaser = release.NewGHClient()
	}

	if pub.inferRepo == nil {
		pub.inferRepo = release.InferRepo
	}

	if err = pub.run(ctx); err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}

	logger.Info(ctx, "Publish completed successfully")

	return nil
}

// run performs the publish steps in order; the first failure aborts everything.
func (p *publisher) run(ctx context.Context) error {
	if err := p.ensureArtifactsExist(); err != nil {
		return err
	}

	loaded, err := p.store.Load(ctx)
	if err != nil {
		return err
	}

	repo, err := p.resolveRepo(ctx, loaded.Repo)
	if err != nil {
		return err
	}

	// Fail a re-publish before mutating remote release state.
	if err = p.checkForDuplicates(loaded); err != nil {
		return err
	}

	title := p.opts.Title
	if title == "" {
		title = p.opts.Tag
	}

	notes := p.opts.Notes
	if notes == "" {
		notes = DefaultNotes
	}

	err = p.releaser.Create(ctx, &release.Release{
		Tag:        p.opts.Tag,
		Title:      title,
		Notes:      notes,
		Repo:       p.opts.Repo,
		AssetPaths: p.opts.ArtifactPaths,
	})
	if err != nil {
		return err
	}

	records, err := p.inspectArtifacts(ctx)
	if err != nil {
		return err
	}

	merged, err := loaded.Merge(records, repo)
	if err != nil {
		return err
	}

	if err = p.store.Save(ctx, merged); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Manifest updated",
		"path", p.store.Path(), "added", len(records), "total", len(merged.Wheels))

	count, err := indexer.Build(ctx, p.cfg)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Index regenerated", "wheels", count)

	return nil
}

// ensureArtifactsExist verifies every input path and reports all missing
// files at once for fast feedback.
func (p *publisher) ensureArtifactsExist() error {
	if len(p.opts.ArtifactPaths) == 0 {
		return fmt.Errorf("%w: no wheel files given", ErrMissingArtifact)
	}

	var missing []string

	for _, path := range p.opts.ArtifactPaths {
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, path)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingArtifact, strings.Join(missing, ", "))
	}

	return nil
}

// resolveRepo reconciles the repository identifier from the explicit
// override, the version-control remote and the existing manifest, in that
// precedence. Differing non-empty values are a hard error, never a
// silent override.
func (p *publisher) resolveRepo(ctx context.Context, manifestRepo string) (string, error) {
	repo, err := reconcileRepo(p.opts.Repo, p.inferRepo(ctx))
	if err != nil {
		return "", err
	}

	repo, err = reconcileRepo(repo, manifestRepo)
	if err != nil {
		return "", err
	}

	if repo == "" {
		return "", ErrRepoUnresolved
	}

	logger.InfoKV(ctx, "Resolved repository", "repo", repo)

	return repo, nil
}

// reconcileRepo merges two repository sources, preferring the first.
func reconcileRepo(preferred, fallback string) (string, error) {
	if preferred != "" && fallback != "" && preferred != fallback {
		return "", fmt.Errorf("%w: %q vs %q", manifest.ErrRepoConflict, preferred, fallback)
	}

	if preferred != "" {
		return preferred, nil
	}

	return fallback, nil
}

// checkForDuplicates rejects (tag, filename) pairs already recorded in
// the manifest so the release-hosting call is never made for a re-publish.
func (p *publisher) checkForDuplicates(m *manifest.Manifest) error {
	existing := make(map[string]struct{}, len(m.Wheels))
	for i := range m.Wheels {
		existing[m.Wheels[i].Key()] = struct{}{}
	}

	for _, path := range p.opts.ArtifactPaths {
		key := p.opts.Tag + "/" + filepath.Base(path)
		if _, ok := existing[key]; ok {
			return fmt.Errorf("%w: %s (%s)",
				manifest.ErrDuplicate, filepath.Base(path), p.opts.Tag)
		}
	}

	return nil
}

// inspectArtifacts builds a manifest record per artifact. A single
// unparseable filename or unreadable file aborts the whole batch.
func (p *publisher) inspectArtifacts(ctx context.Context) ([]wheel.Record, error) {
	records := make([]wheel.Record, 0, len(p.opts.ArtifactPaths))

	for _, path := range p.opts.ArtifactPaths {
		record, err := wheel.Inspect(path, p.opts.Tag)
		if err != nil {
			return nil, err
		}

		logger.DebugKV(ctx, "Inspected wheel",
			"filename", record.Filename, "package", record.Package,
			"version", record.Version, "size_bytes", record.SizeBytes)

		records = append(records, *record)
	}

	return records, nil
}
