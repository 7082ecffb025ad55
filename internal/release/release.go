package release

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/oshokin/wheelhouse/internal/logger"
)

// Release describes one batch of artifacts to publish under a tag.
type Release struct {
	// Tag is the release tag to create.
	Tag string
	// Title is the human-readable release title.
	Title string
	// Notes is the release description body.
	Notes string
	// Repo optionally targets a repository other than the current one,
	// in owner/name form.
	Repo string
	// AssetPaths lists the files to upload.
	AssetPaths []string
}

// Releaser uploads a set of files under a tag and reports success or failure.
type Releaser interface {
	Create(ctx context.Context, r *Release) error
}

// GHClient creates releases by invoking the gh CLI as a black-box command.
type GHClient struct {
	// executable is the gh binary name, overridable for tests.
	executable string
}

// NewGHClient returns a client that shells out to gh.
func NewGHClient() *GHClient {
	return &GHClient{executable: "gh"}
}

// Create runs `gh release create` with all assets attached. The upload is
// atomic from the caller's point of view: either gh exits zero and the
// release exists with every asset, or the error carries gh's stderr.
func (c *GHClient) Create(ctx context.Context, r *Release) error {
	args := append([]string{"release", "create", r.Tag}, r.AssetPaths...)
	args = append(args, "--title", r.Title, "--notes", r.Notes)

	if r.Repo != "" {
		args = append(args, "--repo", r.Repo)
	}

	logger.InfoKV(ctx, "Creating release",
		"tag", r.Tag, "assets", len(r.AssetPaths), "repo", r.Repo)

	cmd := exec.CommandContext(ctx, c.executable, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		message := strings.TrimSpace(stderr.String())
		if message != "" {
			return fmt.Errorf("create release %s: %w: %s", r.Tag, err, message)
		}

		return fmt.Errorf("create release %s: %w", r.Tag, err)
	}

	return nil
}

// githubRemoteRegexp matches SSH and HTTPS GitHub remote URLs and
// captures the owner/name part.
var githubRemoteRegexp = regexp.MustCompile(
	`^(?:git@github\.com:|https://github\.com/)([^/]+/[^/]+?)(?:\.git)?$`)

// InferRepo derives the owner/name repository identifier from the origin
// remote of the surrounding git checkout. Inference is best-effort: a
// missing remote or a non-GitHub URL yields an empty string, not an
// error, since callers fall back to other sources.
func InferRepo(ctx context.Context) string {
	output, err := exec.CommandContext(ctx, "git", "remote", "get-url", "origin").Output()
	if err != nil {
		logger.DebugKV(ctx, "No usable git remote", "error", err)
		return ""
	}

	return ParseRemoteURL(strings.TrimSpace(string(output)))
}

// ParseRemoteURL extracts owner/name from a GitHub remote URL,
// or returns an empty string when the URL is not GitHub-shaped.
func ParseRemoteURL(url string) string {
	match := githubRemoteRegexp.FindStringSubmatch(url)
	if match == nil {
		return ""
	}

	return match[1]
}
