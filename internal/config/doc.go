// Package config manages settings stored at ~/.addonrepo/config.yaml, merged
// with an optional ./addonrepo.yaml in the working directory and with
// ADDONREPO_* environment variables. Command-line flags take precedence over
// all of these; that layering happens in the cli package.
package config
