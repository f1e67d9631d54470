// Package translator runs an external JSP compiler (a JspC-compatible
// command) as the implementation of invoker.Translator.
package translator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/vk/jspcgo/internal/ctxlog"
	"github.com/vk/jspcgo/internal/execctx"
	"github.com/vk/jspcgo/internal/jspcargs"
)

// maxDiagnostics bounds how much stderr is kept for the failure message.
const maxDiagnostics = 8 << 10

// Settings are compiler properties that are not part of the assembled
// argument list.
type Settings struct {
	Verbose                             int
	SmapDumped                          bool
	SmapSuppressed                      bool
	Compile                             bool
	ValidateXML                         bool
	TrimSpaces                          bool
	ErrorOnUseBeanInvalidClassAttribute bool
	SourceVM                            string
	TargetVM                            string
}

// Switches renders s as command-line switches.
func (s Settings) Switches() []string {
	var out []string
	if s.Verbose > 0 {
		out = append(out, "-v")
	}
	if s.Compile {
		out = append(out, "-compile")
	}
	if !s.SmapSuppressed {
		out = append(out, "-smap")
	}
	if s.SmapDumped {
		out = append(out, "-dumpsmap")
	}
	if s.ValidateXML {
		out = append(out, "-validate")
	}
	if s.TrimSpaces {
		out = append(out, "-trimSpaces")
	}
	if s.ErrorOnUseBeanInvalidClassAttribute {
		out = append(out, "-errorOnUseBeanInvalidClassAttribute")
	} else {
		out = append(out, "-noErrorOnUseBeanInvalidClassAttribute")
	}
	if s.SourceVM != "" {
		out = append(out, "-source", s.SourceVM)
	}
	if s.TargetVM != "" {
		out = append(out, "-target", s.TargetVM)
	}
	return out
}

// Command runs Path with Prefix, the Settings switches and the assembled
// arguments, in that order.
type Command struct {
	Path     string
	Prefix   []string
	Settings Settings
	Dir      string
	Stdout   io.Writer
	Stderr   io.Writer
}

// CommandLine returns the full argv (without the program name) for args.
func (c *Command) CommandLine(args jspcargs.Arguments) []string {
	argv := append([]string(nil), c.Prefix...)
	argv = append(argv, c.Settings.Switches()...)
	return append(argv, args.Tokens...)
}

// Compile implements invoker.Translator. The child process sees the
// execution context's classpath as CLASSPATH.
func (c *Command) Compile(ctx context.Context, ec *execctx.Context, args jspcargs.Arguments) (int, error) {
	logger := ctxlog.FromContext(ctx)

	argv := c.CommandLine(args)
	cmd := exec.CommandContext(ctx, c.Path, argv...)
	cmd.Dir = c.Dir
	cmd.Env = append(os.Environ(), "CLASSPATH="+ec.String())

	var diag tailBuffer
	cmd.Stdout = writerOr(c.Stdout)
	cmd.Stderr = io.MultiWriter(writerOr(c.Stderr), &diag)

	logger.Debug("Starting translator.", "command", c.Path, "args", argv)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if msg := strings.TrimSpace(diag.String()); msg != "" {
				return 0, errors.New(msg)
			}
		}
		return 0, fmt.Errorf("%s: %w", c.Path, err)
	}
	return args.SourceCount, nil
}

func writerOr(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

// tailBuffer keeps the last maxDiagnostics bytes written to it.
type tailBuffer struct {
	buf bytes.Buffer
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	t.buf.Write(p)
	if over := t.buf.Len() - maxDiagnostics; over > 0 {
		t.buf.Next(over)
	}
	return n, nil
}

func (t *tailBuffer) String() string {
	return t.buf.String()
}
