// Package indexer renders the wheel manifest into a static find-links
// HTML page.
//
// Output is a pure function of the manifest and settings: the same inputs
// always produce byte-identical HTML, and Build replaces the output
// directory wholesale on every run. All manifest-supplied strings pass
// through html/template's contextual escaping before embedding.
package indexer
