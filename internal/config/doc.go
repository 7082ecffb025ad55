// Package config defines the settings used by the wheelhouse binaries and
// provides helpers to load, validate and save them in YAML format.
//
// The settings file is optional; when absent, all defaults apply, so a
// fresh checkout works without any configuration.
package config
