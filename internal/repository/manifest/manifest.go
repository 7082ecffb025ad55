package manifest

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/oshokin/wheelhouse/internal/domain/wheel"
)

// Manifest is the single document of record listing all published wheels
// and the repository they were released under.
type Manifest struct {
	// Repo is the owning repository in owner/name form.
	// It is empty only while no wheels have been published.
	Repo string `json:"repo"`
	// Wheels holds one record per published artifact,
	// sorted by (package, version, filename).
	Wheels []wheel.Record `json:"wheels"`
}

var (
	// ErrCorrupt is returned when the persisted manifest cannot be decoded
	// or violates the schema. The file is never auto-repaired.
	ErrCorrupt = errors.New("manifest is corrupt")

	// ErrDuplicate is returned when a (release_tag, filename) pair is
	// published twice. Overwriting would silently change the checksum of
	// an already-distributed artifact.
	ErrDuplicate = errors.New("wheel already recorded in manifest")

	// ErrRepoConflict is returned when two non-empty repository values disagree.
	ErrRepoConflict = errors.New("repository mismatch")
)

// New returns an empty manifest.
func New() *Manifest {
	return &Manifest{
		Repo:   "",
		Wheels: []wheel.Record{},
	}
}

// Sort orders the wheel list by (package, version, filename).
// Versions compare as opaque strings.
func (m *Manifest) Sort() {
	sort.SliceStable(m.Wheels, func(i, j int) bool {
		a, b := &m.Wheels[i], &m.Wheels[j]
		if a.Package != b.Package {
			return a.Package < b.Package
		}

		if a.Version != b.Version {
			return a.Version < b.Version
		}

		return a.Filename < b.Filename
	})
}

// Merge returns a new manifest extended with the given records and the
// resolved repository. It fails with ErrRepoConflict when the manifest
// already names a different repository, and with ErrDuplicate when any
// (release_tag, filename) pair is already present, either in the
// manifest or twice within the new batch. The receiver is not modified.
func (m *Manifest) Merge(records []wheel.Record, repo string) (*Manifest, error) {
	if m.Repo != "" && repo != "" && m.Repo != repo {
		return nil, fmt.Errorf("%w: manifest has %q, publish requested %q",
			ErrRepoConflict, m.Repo, repo)
	}

	if repo == "" {
		repo = m.Repo
	}

	seen := make(map[string]struct{}, len(m.Wheels)+len(records))
	for i := range m.Wheels {
		seen[m.Wheels[i].Key()] = struct{}{}
	}

	merged := &Manifest{
		Repo:   repo,
		Wheels: append(append([]wheel.Record{}, m.Wheels...), records...),
	}

	for i := range records {
		key := records[i].Key()
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %s (%s)",
				ErrDuplicate, records[i].Filename, records[i].ReleaseTag)
		}

		seen[key] = struct{}{}
	}

	merged.Sort()

	return merged, nil
}

// validate fails closed on structural problems instead of coercing
// defaults, so a manifest written by hand or by an older tool is either
// fully usable or rejected.
func (m *Manifest) validate() error {
	if m.Wheels == nil {
		return fmt.Errorf("%w: missing wheels list", ErrCorrupt)
	}

	seen := make(map[string]struct{}, len(m.Wheels))

	for i := range m.Wheels {
		record := &m.Wheels[i]

		switch {
		case record.Filename == "":
			return fmt.Errorf("%w: wheel %d has no filename", ErrCorrupt, i)
		case record.Package == "":
			return fmt.Errorf("%w: %s has no package", ErrCorrupt, record.Filename)
		case record.Version == "":
			return fmt.Errorf("%w: %s has no version", ErrCorrupt, record.Filename)
		case record.ReleaseTag == "":
			return fmt.Errorf("%w: %s has no release tag", ErrCorrupt, record.Filename)
		case record.SizeBytes < 0:
			return fmt.Errorf("%w: %s has negative size", ErrCorrupt, record.Filename)
		case len(record.SHA256) != 64 || record.SHA256 != strings.ToLower(record.SHA256):
			return fmt.Errorf("%w: %s has a malformed sha256 digest", ErrCorrupt, record.Filename)
		}

		key := record.Key()
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: duplicate entry %s (%s)",
				ErrCorrupt, record.Filename, record.ReleaseTag)
		}

		seen[key] = struct{}{}
	}

	if len(m.Wheels) > 0 && m.Repo == "" {
		return fmt.Errorf("%w: wheels present but repo is empty", ErrCorrupt)
	}

	return nil
}
