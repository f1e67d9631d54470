// Package invoker brackets a call to the JSP translator with a scoped
// execution context and times it.
package invoker

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/vk/jspcgo/internal/ctxlog"
	"github.com/vk/jspcgo/internal/execctx"
	"github.com/vk/jspcgo/internal/jspcargs"
	"github.com/vk/jspcgo/internal/toollocator"
)

// Translator is the seam to the external template-to-bytecode compiler.
// It returns the number of source files it was handed.
type Translator interface {
	Compile(ctx context.Context, ec *execctx.Context, args jspcargs.Arguments) (int, error)
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(ctx context.Context, ec *execctx.Context, args jspcargs.Arguments) (int, error)

// Compile calls f.
func (f TranslatorFunc) Compile(ctx context.Context, ec *execctx.Context, args jspcargs.Arguments) (int, error) {
	return f(ctx, ec, args)
}

// CompilationError wraps a translator failure. Its message is the
// translator's own, unchanged.
type CompilationError struct {
	Err error
}

// Error implements the error interface for CompilationError.
func (e *CompilationError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the translator error.
func (e *CompilationError) Unwrap() error {
	return e.Err
}

// Result reports what a translator run did.
type Result struct {
	FileCount int
	Elapsed   time.Duration
}

// Invoker runs the translator inside a context that exposes the tool archive.
type Invoker struct {
	translator Translator
	now        func() time.Time
}

// New returns an Invoker backed by t.
func New(t Translator) *Invoker {
	return &Invoker{translator: t, now: time.Now}
}

// WithClock replaces the time source used to measure elapsed time.
func (inv *Invoker) WithClock(now func() time.Time) *Invoker {
	inv.now = now
	return inv
}

// Invoke compiles the sources described by args. outputDir is only used for
// log messages. The previously active execution context is restored before
// Invoke returns, whatever the translator does.
func (inv *Invoker) Invoke(ctx context.Context, args jspcargs.Arguments, tool *toollocator.Tool, outputDir string) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	if tool == nil {
		return nil, fmt.Errorf("invoker: no tools archive resolved")
	}

	if args.SourceCount > 0 {
		logger.Info(fmt.Sprintf("Compiling %s to %s", english.Plural(args.SourceCount, "JSP source file", "JSP source files"), outputDir))
	} else {
		logger.Info(fmt.Sprintf("Compiling JSP source files to %s", outputDir))
	}

	var count int
	start := inv.now()
	err := execctx.Scoped([]string{tool.Path}, func(ec *execctx.Context) error {
		logger.Debug("Execution context installed.", "classpath", ec.String())
		n, err := inv.translator.Compile(ctx, ec, args)
		if err != nil {
			return &CompilationError{Err: err}
		}
		count = n
		return nil
	})
	elapsed := inv.now().Sub(start)
	logger.Debug("Execution context restored.")

	if err != nil {
		logger.Error("JSP compilation failed.", "error", err, "elapsed", elapsed)
		return nil, err
	}

	logger.Info(fmt.Sprintf("Compilation completed in %s", elapsed), "files", count)
	return &Result{FileCount: count, Elapsed: elapsed}, nil
}
