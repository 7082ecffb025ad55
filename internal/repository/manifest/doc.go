// Package manifest implements persistence for the wheel manifest.
//
// The FileRepository stores and loads the manifest as deterministic JSON
// on disk (sorted keys, sorted wheel list, 2-space indent, trailing
// newline) so repeated saves of identical data are byte-identical and
// diff cleanly under version control. Merge enforces the manifest
// invariants: a single owning repo and unique (release_tag, filename)
// pairs.
package manifest
