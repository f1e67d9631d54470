// Package hcl provides the HCL implementation of config.Loader. It parses a
// single configuration file with `jspc`, `project` and `translator` blocks,
// evaluates expressions against the process environment (`env.NAME`) and
// overlays the explicitly set attributes onto the default model.
package hcl
