// Package config defines the format-agnostic configuration model for a JSP
// pre-compilation run, along with the Loader interface implemented by the
// HCL and YAML front ends.
//
// The `config.Model` is the single source of truth for the `orchestrator`
// package. Loaders only overlay explicitly set values onto Default(); path
// defaults that depend on other settings are filled in by Resolve.
package config
