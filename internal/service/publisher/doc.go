// Package publisher implements the publish workflow: verify artifacts,
// resolve the owning repository, create the tagged release, record the
// wheels in the manifest and regenerate the static index.
//
// Every failure is fatal and aborts the whole invocation before any
// partial state is written; in particular the manifest is only touched
// after the release upload succeeded, and a duplicate publish is
// rejected before the release-hosting call is made at all.
package publisher
