package jspcargs

import (
	"os"
	"path/filepath"
	"strings"
)

// Arguments is the assembled translator command line.
type Arguments struct {
	Tokens []string
	// SourceCount is the number of trailing positional source paths.
	SourceCount int
}

// Strings returns a copy of the tokens.
func (a Arguments) Strings() []string {
	return append([]string(nil), a.Tokens...)
}

// Assemble renders r into the token order the translator expects:
// root, output, optional encoding, switches, fragment, package, classpath,
// then one positional path per source file.
func Assemble(r *Request) (Arguments, error) {
	if r == nil || r.SourceRoot == "" {
		return Arguments{}, &ConfigurationError{Field: "source directory"}
	}
	if r.OutputDir == "" {
		return Arguments{}, &ConfigurationError{Field: "working directory"}
	}

	args := []string{
		"-uriroot", r.SourceRoot,
		"-d", r.OutputDir,
	}
	if r.Encoding != "" {
		args = append(args, "-javaEncoding", r.Encoding)
	}
	if r.ShowSuccess {
		args = append(args, "-s")
	}
	if r.ListErrors {
		args = append(args, "-l")
	}

	fragment := r.FragmentPath
	if abs, err := filepath.Abs(fragment); err == nil {
		fragment = abs
	}
	args = append(args,
		"-webinc", fragment,
		"-p", r.PackageName,
		"-classpath", strings.Join(r.Classpath, string(os.PathListSeparator)),
	)

	for _, src := range r.Sources {
		args = append(args, filepath.Join(r.SourceRoot, src))
	}

	return Arguments{Tokens: args, SourceCount: len(r.Sources)}, nil
}
