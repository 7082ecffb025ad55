package wheel

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCanonicalName verifies separator collapsing and lowercasing.
func TestCanonicalName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Foo_Bar.Baz":  "foo-bar-baz",
		"foo--bar":     "foo-bar",
		"demo_pkg":     "demo-pkg",
		"already-fine": "already-fine",
		"A.B_C-D":      "a-b-c-d",
	}
	for in, want := range cases {
		require.Equal(t, want, CanonicalName(in))
	}
}

// TestParseFilename verifies extraction of package and version from wheel names.
func TestParseFilename(t *testing.T) {
	t.Parallel()

	pkg, version, err := ParseFilename("demo_pkg-1.2.3-py3-none-any.whl")
	require.NoError(t, err)
	require.Equal(t, "demo-pkg", pkg)
	require.Equal(t, "1.2.3", version)

	// Optional build number between version and python tag.
	pkg, version, err = ParseFilename("demo_pkg-1.2.3-4build1-py3-none-any.whl")
	require.NoError(t, err)
	require.Equal(t, "demo-pkg", pkg)
	require.Equal(t, "1.2.3", version)
}

// TestParseFilename_Invalid ensures non-wheel names fail with ErrInvalidName.
func TestParseFilename_Invalid(t *testing.T) {
	t.Parallel()

	for _, name := range []string{
		"demo_pkg-1.2.3.tar.gz",
		"not-a-wheel.whl",
		"README.md",
		"",
	} {
		_, _, err := ParseFilename(name)
		require.ErrorIs(t, err, ErrInvalidName, name)
	}
}

// TestChecksumAndSize verifies the streamed digest and length against a direct hash.
func TestChecksumAndSize(t *testing.T) {
	t.Parallel()

	contents := []byte("wheel payload bytes")
	path := filepath.Join(t.TempDir(), "demo_pkg-1.0.0-py3-none-any.whl")
	require.NoError(t, os.WriteFile(path, contents, 0o600))

	sum := sha256.Sum256(contents)

	digest, size, err := ChecksumAndSize(path)
	require.NoError(t, err)
	require.Equal(t, hex.EncodeToString(sum[:]), digest)
	require.Equal(t, int64(len(contents)), size)
	require.Len(t, digest, 64)
}

// TestChecksumAndSize_MissingFile ensures unreadable artifacts surface an error.
func TestChecksumAndSize_MissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := ChecksumAndSize(filepath.Join(t.TempDir(), "absent.whl"))
	require.Error(t, err)
}

// TestInspect builds a full record from a file on disk.
func TestInspect(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "demo_pkg-1.2.3-py3-none-any.whl")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))

	record, err := Inspect(path, "v2026.08.29")
	require.NoError(t, err)
	require.Equal(t, "demo_pkg-1.2.3-py3-none-any.whl", record.Filename)
	require.Equal(t, "demo-pkg", record.Package)
	require.Equal(t, "1.2.3", record.Version)
	require.Equal(t, "v2026.08.29", record.ReleaseTag)
	require.Equal(t, int64(4), record.SizeBytes)
	require.Len(t, record.SHA256, 64)
}

// TestHumanSize verifies unit boundaries and formatting.
func TestHumanSize(t *testing.T) {
	t.Parallel()

	cases := map[int64]string{
		0:                      "0 B",
		512:                    "512 B",
		1023:                   "1023 B",
		1024:                   "1.0 KB",
		1536:                   "1.5 KB",
		10 * 1024 * 1024:       "10.0 MB",
		3 * 1024 * 1024 * 1024: "3.0 GB",
	}
	for in, want := range cases {
		require.Equal(t, want, HumanSize(in))
	}
}
