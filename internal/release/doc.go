// Package release integrates with the external release-hosting and
// version-control tooling.
//
// The Releaser interface is deliberately narrow (upload a set of files
// under a tag) so the publisher can be tested with a double instead of
// spawning processes. GHClient implements it on top of the gh CLI, and
// InferRepo derives the owner/name identifier from the ambient git
// remote.
package release
