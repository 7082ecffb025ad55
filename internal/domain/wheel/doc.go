// Package wheel contains core domain types for published wheel artifacts.
//
// It defines the Record persisted in the manifest, parsing of wheel
// filenames into package and version, canonical package naming, and
// checksum helpers used when a wheel is published.
package wheel
