// Package jspcargs builds the ordered option list handed to the JSP
// translator. Everything here is a pure function of the Request value.
package jspcargs

import "fmt"

// ConfigurationError reports a required request field that was left empty.
type ConfigurationError struct {
	Field string
}

// Error implements the error interface for ConfigurationError.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s is required and cannot be empty", e.Field)
}

// Request describes a single translator run. It is built once by NewRequest
// and must not be modified afterwards; the slices are copied on construction.
type Request struct {
	SourceRoot   string
	OutputDir    string
	Encoding     string // optional, passed as -javaEncoding
	PackageName  string
	Classpath    []string
	FragmentPath string
	ShowSuccess  bool
	ListErrors   bool
	// Sources are paths relative to SourceRoot.
	Sources []string
}

// NewRequest validates r and returns an independent copy of it.
func NewRequest(r Request) (*Request, error) {
	if r.SourceRoot == "" {
		return nil, &ConfigurationError{Field: "source directory"}
	}
	if r.OutputDir == "" {
		return nil, &ConfigurationError{Field: "working directory"}
	}

	r.Classpath = append([]string(nil), r.Classpath...)
	r.Sources = append([]string(nil), r.Sources...)
	return &r, nil
}
