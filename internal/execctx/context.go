// Package execctx models the process-wide resolution context the JSP
// translator uses to find supporting code. A Context is an immutable chain
// of classpath entries; exactly one Context is active at a time.
package execctx

import (
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
)

// Context is one link in the resolution chain. Lookups consult the parent
// before the context's own entries.
type Context struct {
	parent  *Context
	entries []string
}

// New returns a child of parent that additionally exposes entries.
func New(parent *Context, entries ...string) *Context {
	return &Context{parent: parent, entries: append([]string(nil), entries...)}
}

// Parent returns the enclosing context, or nil for a root.
func (c *Context) Parent() *Context {
	if c == nil {
		return nil
	}
	return c.parent
}

// Entries returns the entries added by this context only.
func (c *Context) Entries() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.entries...)
}

// Classpath returns every entry visible from c, parents first, without
// duplicates.
func (c *Context) Classpath() []string {
	if c == nil {
		return nil
	}
	out := c.parent.Classpath()
	seen := make(map[string]struct{}, len(out))
	for _, e := range out {
		seen[e] = struct{}{}
	}
	for _, e := range c.entries {
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

// String renders the classpath with the host list separator.
func (c *Context) String() string {
	return strings.Join(c.Classpath(), string(os.PathListSeparator))
}

var active atomic.Pointer[Context]

func init() {
	active.Store(FromEnvironment())
}

// FromEnvironment builds a root context from the CLASSPATH variable.
func FromEnvironment() *Context {
	return New(nil, filepath.SplitList(os.Getenv("CLASSPATH"))...)
}

// Active returns the currently installed context.
func Active() *Context {
	return active.Load()
}

// Install makes c the active context and returns the one it replaced.
// Callers that swap the context own restoring it; prefer Scoped.
func Install(c *Context) (previous *Context) {
	return active.Swap(c)
}

// Scoped installs a child of the active context exposing entries, runs fn
// with it, and reinstates the previous context however fn exits, including
// by panic.
func Scoped(entries []string, fn func(c *Context) error) error {
	previous := Active()
	scoped := New(previous, entries...)
	Install(scoped)
	defer Install(previous)

	return fn(scoped)
}
