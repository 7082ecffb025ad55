package wheel

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Record describes a single published wheel artifact.
// Records are append-only: once written to the manifest they are never
// mutated or deleted. JSON keys are kept in alphabetical order so the
// persisted manifest serializes with sorted keys.
type Record struct {
	// Filename is the exact artifact file name, unique together with ReleaseTag.
	Filename string `json:"filename"`
	// Package is the canonical package name (lowercase, separators collapsed to "-").
	Package string `json:"package"`
	// ReleaseTag identifies the release batch the artifact was published under.
	ReleaseTag string `json:"release_tag"`
	// SHA256 is the lowercase hex digest of the file contents.
	SHA256 string `json:"sha256"`
	// SizeBytes is the artifact size in bytes.
	SizeBytes int64 `json:"size_bytes"`
	// Version is the version string parsed from the filename, opaque otherwise.
	Version string `json:"version"`
}

// Key returns the manifest uniqueness key of the record.
func (r *Record) Key() string {
	return r.ReleaseTag + "/" + r.Filename
}

// ErrInvalidName is returned when a filename does not look like a wheel.
var ErrInvalidName = errors.New("unrecognized wheel filename")

var (
	// filenameRegexp matches <name>-<version>[-<build>]-<python>-<abi>-<platform>.whl.
	filenameRegexp = regexp.MustCompile(
		`^(.+?)-([^-]+)(?:-(\d[^-]*))?-([^-]+)-([^-]+)-([^-]+)\.whl$`)

	// separatorRuns collapses to a single dash during canonicalization.
	separatorRuns = regexp.MustCompile(`[-_.]+`)
)

// CanonicalName normalizes a package name so that variant spellings
// collapse to a single form: runs of "-", "_" and "." become one "-",
// and the result is lowercased.
func CanonicalName(name string) string {
	return strings.ToLower(separatorRuns.ReplaceAllString(name, "-"))
}

// ParseFilename extracts the canonical package name and verbatim version
// from a wheel filename. It returns ErrInvalidName when the name does not
// match the wheel naming pattern.
func ParseFilename(name string) (pkg, version string, err error) {
	match := filenameRegexp.FindStringSubmatch(name)
	if match == nil {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidName, name)
	}

	return CanonicalName(match[1]), match[2], nil
}

// ChecksumAndSize streams the file at path through SHA-256 and reports
// the lowercase hex digest together with the byte length. Streaming keeps
// memory bounded regardless of artifact size.
func ChecksumAndSize(path string) (digest string, size int64, err error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", 0, fmt.Errorf("open artifact: %w", err)
	}

	// Best-effort cleanup.
	defer func() {
		_ = file.Close()
	}()

	hasher := sha256.New()

	size, err = io.Copy(hasher, file)
	if err != nil {
		return "", 0, fmt.Errorf("read artifact: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), size, nil
}

// Inspect builds the manifest Record for an artifact on disk, combining
// filename parsing with checksum and size computation.
func Inspect(path, releaseTag string) (*Record, error) {
	filename := filepath.Base(path)

	pkg, version, err := ParseFilename(filename)
	if err != nil {
		return nil, err
	}

	digest, size, err := ChecksumAndSize(path)
	if err != nil {
		return nil, err
	}

	return &Record{
		Filename:   filename,
		Package:    pkg,
		ReleaseTag: releaseTag,
		SHA256:     digest,
		SizeBytes:  size,
		Version:    version,
	}, nil
}
