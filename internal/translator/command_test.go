package translator

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/jspcgo/internal/ctxlog"
	"github.com/vk/jspcgo/internal/execctx"
	"github.com/vk/jspcgo/internal/jspcargs"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not available on windows")
	}
	path := filepath.Join(t.TempDir(), "jspc")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestSettings_Switches(t *testing.T) {
	testCases := []struct {
		name     string
		settings Settings
		expected []string
	}{
		{
			name:     "zero value",
			settings: Settings{},
			expected: []string{"-smap", "-noErrorOnUseBeanInvalidClassAttribute"},
		},
		{
			name: "everything on",
			settings: Settings{
				Verbose:                             2,
				SmapDumped:                          true,
				Compile:                             true,
				ValidateXML:                         true,
				TrimSpaces:                          true,
				ErrorOnUseBeanInvalidClassAttribute: true,
				SourceVM:                            "1.8",
				TargetVM:                            "11",
			},
			expected: []string{
				"-v", "-compile", "-smap", "-dumpsmap", "-validate", "-trimSpaces",
				"-errorOnUseBeanInvalidClassAttribute", "-source", "1.8", "-target", "11",
			},
		},
		{
			name:     "smap suppressed",
			settings: Settings{SmapSuppressed: true, ErrorOnUseBeanInvalidClassAttribute: true},
			expected: []string{"-errorOnUseBeanInvalidClassAttribute"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.settings.Switches())
		})
	}
}

func TestCommand_PassesArgsAndClasspath(t *testing.T) {
	out := filepath.Join(t.TempDir(), "record.txt")
	script := writeScript(t, `echo "$CLASSPATH" > "`+out+`"
for a in "$@"; do echo "$a" >> "`+out+`"; done
`)

	cmd := &Command{Path: script, Prefix: []string{"--jasper"}, Settings: Settings{SmapSuppressed: true, ErrorOnUseBeanInvalidClassAttribute: true}}
	ec := execctx.New(execctx.New(nil, "servlet.jar"), "/jdk/lib/tools.jar")
	args := jspcargs.Arguments{Tokens: []string{"-uriroot", "web", "web/index.jsp"}, SourceCount: 1}

	n, err := cmd.Compile(ctxlog.Discard(context.Background()), ec, args)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "servlet.jar"+string(os.PathListSeparator)+"/jdk/lib/tools.jar", lines[0])
	assert.Equal(t, []string{"--jasper", "-errorOnUseBeanInvalidClassAttribute", "-uriroot", "web", "web/index.jsp"}, lines[1:])
}

func TestCommand_FailurePassesDiagnosticsThrough(t *testing.T) {
	script := writeScript(t, `echo "Unable to compile class for JSP" 1>&2
exit 3
`)

	_, err := (&Command{Path: script}).Compile(ctxlog.Discard(context.Background()), execctx.New(nil), jspcargs.Arguments{})
	require.Error(t, err)
	assert.Equal(t, "Unable to compile class for JSP", err.Error())
}

func TestCommand_MissingBinary(t *testing.T) {
	_, err := (&Command{Path: filepath.Join(t.TempDir(), "nope")}).Compile(ctxlog.Discard(context.Background()), execctx.New(nil), jspcargs.Arguments{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestTailBuffer_KeepsTail(t *testing.T) {
	var tb tailBuffer
	_, _ = tb.Write([]byte(strings.Repeat("a", maxDiagnostics)))
	_, _ = tb.Write([]byte("tail"))
	assert.Len(t, tb.String(), maxDiagnostics)
	assert.True(t, strings.HasSuffix(tb.String(), "tail"))
}
