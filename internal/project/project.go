// Package project holds the slice of the host build's project model that the
// JSP pipeline reads and updates.
package project

import (
	"path/filepath"
	"slices"
	"sort"
)

// WarPackaging is the packaging type that enables descriptor merging.
const WarPackaging = "war"

// Model describes the project being built.
type Model struct {
	Packaging       string
	BaseDir         string
	BuildDir        string
	OutputDir       string
	Properties      map[string]string
	compileSrcRoots []string
}

// IsWar reports whether the project is packaged as a web archive.
func (m *Model) IsWar() bool {
	return m.Packaging == WarPackaging
}

// AddCompileSourceRoot registers dir as a generated source root. Adding the
// same directory twice is a no-op.
func (m *Model) AddCompileSourceRoot(dir string) {
	dir = filepath.Clean(dir)
	if slices.Contains(m.compileSrcRoots, dir) {
		return
	}
	m.compileSrcRoots = append(m.compileSrcRoots, dir)
}

// CompileSourceRoots returns the registered source roots in insertion order.
func (m *Model) CompileSourceRoots() []string {
	return slices.Clone(m.compileSrcRoots)
}

// PropertyKeys returns the property names in sorted order.
func (m *Model) PropertyKeys() []string {
	keys := make([]string, 0, len(m.Properties))
	for k := range m.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
