// Package testutil holds fixtures shared by the package and end-to-end
// tests: a thread-safe log buffer, a webapp tree builder and a fake
// translator that behaves like JspC on disk.
package testutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/jspcgo/internal/execctx"
	"github.com/vk/jspcgo/internal/jspcargs"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteFiles creates files (relative path -> content) under root.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

// FakeRuntime creates <dir>/jre and <dir>/lib/tools.jar and
// <dir>/Classes/classes.jar, returning the jre directory as runtime home.
func FakeRuntime(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	WriteFiles(t, dir, map[string]string{
		"jre/release":         "JAVA_VERSION=\"1.8.0\"",
		"lib/tools.jar":       "PK",
		"Classes/classes.jar": "PK",
	})
	return filepath.Join(dir, "jre")
}

// FakeTranslator mimics JspC: it writes a web fragment to the -webinc path
// and one .java and .class file per source into the -d directory.
type FakeTranslator struct {
	mu sync.Mutex
	// Err, when set, is returned instead of compiling.
	Err error
	// Calls records the argument tokens of every invocation.
	Calls [][]string
	// Contexts records the execution context passed to each invocation.
	Contexts []*execctx.Context
	// Active records execctx.Active() observed during each invocation.
	Active []*execctx.Context
}

// Compile implements invoker.Translator.
func (f *FakeTranslator) Compile(_ context.Context, ec *execctx.Context, args jspcargs.Arguments) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, args.Strings())
	f.Contexts = append(f.Contexts, ec)
	f.Active = append(f.Active, execctx.Active())

	if f.Err != nil {
		return 0, f.Err
	}

	opts, sources := splitTokens(args)
	outDir, pkg, fragment := opts["-d"], opts["-p"], opts["-webinc"]
	root := opts["-uriroot"]
	if outDir == "" || fragment == "" {
		return 0, errors.New("fake translator: missing -d or -webinc")
	}

	var frag strings.Builder
	for _, src := range sources {
		rel, err := filepath.Rel(root, src)
		if err != nil {
			return 0, err
		}
		class := strings.NewReplacer(string(filepath.Separator), ".", ".", "_").Replace(rel)
		base := filepath.Join(outDir, filepath.FromSlash(pkg), strings.ReplaceAll(rel, ".", "_"))
		if err := writeFile(base+".java", "// generated from "+rel); err != nil {
			return 0, err
		}
		if err := writeFile(base+".class", "cafebabe"); err != nil {
			return 0, err
		}
		fmt.Fprintf(&frag, "\n<servlet><servlet-name>%s.%s</servlet-name></servlet>", pkg, class)
	}
	if err := writeFile(fragment, frag.String()+"\n"); err != nil {
		return 0, err
	}
	return len(sources), nil
}

// splitTokens separates option/value pairs from trailing source paths.
func splitTokens(args jspcargs.Arguments) (map[string]string, []string) {
	tokens := args.Tokens
	positional := len(tokens) - args.SourceCount
	opts := map[string]string{}
	for i := 0; i < positional; i++ {
		switch tokens[i] {
		case "-s", "-l":
			opts[tokens[i]] = "true"
		default:
			if i+1 < positional {
				opts[tokens[i]] = tokens[i+1]
				i++
			}
		}
	}
	return opts, tokens[positional:]
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
