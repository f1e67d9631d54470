// Package toollocator finds the platform support archive the JSP translator
// needs on its classpath, relative to a runtime install root.
package toollocator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/vk/jspcgo/internal/ctxlog"
)

// ToolNotFoundError is returned when the resolved archive does not exist.
type ToolNotFoundError struct {
	Path string
}

// Error implements the error interface for ToolNotFoundError.
func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("missing tools archive at: %s", e.Path)
}

// Tool is a resolved support archive.
type Tool struct {
	Path string
}

// Table maps an OS family (runtime.GOOS values) to an archive path template
// relative to the runtime root. Families without an entry use Default.
type Table struct {
	Default  string
	Families map[string]string
}

// DefaultTable mirrors the layout of classic JDK installs: macOS bundles kept
// the compiler classes in Classes/classes.jar, everyone else in lib/tools.jar.
func DefaultTable() *Table {
	return &Table{
		Default: "../lib/tools.jar",
		Families: map[string]string{
			"darwin": "../Classes/classes.jar",
		},
	}
}

// Register adds or replaces the template for family.
func (t *Table) Register(family, template string) {
	if t.Families == nil {
		t.Families = make(map[string]string)
	}
	t.Families[family] = template
}

// Template returns the relative template for family.
func (t *Table) Template(family string) string {
	if tmpl, ok := t.Families[family]; ok {
		return tmpl
	}
	return t.Default
}

// Locator resolves the support archive for one host.
type Locator struct {
	Table    *Table
	OSFamily string
}

// New returns a Locator for the running host using DefaultTable.
func New() *Locator {
	return &Locator{Table: DefaultTable(), OSFamily: runtime.GOOS}
}

// Locate resolves the archive under runtimeRoot and verifies it exists.
func (l *Locator) Locate(ctx context.Context, runtimeRoot string) (*Tool, error) {
	logger := ctxlog.FromContext(ctx)

	if runtimeRoot == "" {
		return nil, &ToolNotFoundError{Path: "(runtime home not set)"}
	}

	table := l.Table
	if table == nil {
		table = DefaultTable()
	}
	family := l.OSFamily
	if family == "" {
		family = runtime.GOOS
	}

	root, err := canonical(runtimeRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve runtime home %s: %w", runtimeRoot, err)
	}
	// ".." in the template applies to the resolved root, not the link.
	path, err := canonical(filepath.Join(root, filepath.FromSlash(table.Template(family))))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tools archive under %s: %w", runtimeRoot, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ToolNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("error accessing tools archive %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, &ToolNotFoundError{Path: path}
	}

	logger.Debug("Using tools archive.", "path", path, "os_family", family)
	return &Tool{Path: path}, nil
}

// canonical makes path absolute and resolves symlinks when the file exists.
func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// Nonexistent paths are still reported in their absolute form.
		return abs, nil
	}
	return resolved, nil
}
