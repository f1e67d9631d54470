package integrationtests

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/jspcgo/internal/app"
	"github.com/vk/jspcgo/internal/orchestrator"
	"github.com/vk/jspcgo/internal/testutil"
)

// fakeJSPC stands in for the JspC launcher. It writes one class file and one
// servlet mapping per source and refuses to run without the tools archive on
// CLASSPATH.
const fakeJSPC = `#!/bin/sh
out=""; frag=""; pkg=""; srcs=""
while [ $# -gt 0 ]; do
  case "$1" in
    -d) out="$2"; shift 2 ;;
    -webinc) frag="$2"; shift 2 ;;
    -p) pkg="$2"; shift 2 ;;
    -uriroot|-classpath|-javaEncoding|-source|-target) shift 2 ;;
    -*) shift ;;
    *) srcs="$srcs $1"; shift ;;
  esac
done
case "$CLASSPATH" in
  *tools.jar*) ;;
  *) echo "tools.jar is not on CLASSPATH" >&2; exit 3 ;;
esac
: > "$frag"
for s in $srcs; do
  name=$(basename "$s" | tr . _)
  mkdir -p "$out/$pkg"
  echo class > "$out/$pkg/$name.class"
  printf '<servlet><servlet-name>%s.%s</servlet-name></servlet>\n' "$pkg" "$name" >> "$frag"
done
`

// failingJSPC reports a translation error the way Jasper does.
const failingJSPC = `#!/bin/sh
echo "org.apache.jasper.JasperException: /index.jsp (line: 1, column: 1) Unterminated &lt;c:if tag" >&2
exit 1
`

type runResult struct {
	Base      string
	App       *app.App
	Report    *orchestrator.Report
	Err       error
	LogOutput string
}

// runIntegrationTest lays files out under a fresh project directory, writes
// the given translator script to bin/jspc and runs the application against
// <base>/jspc.hcl. Any "${base}" in file contents is expanded first.
func runIntegrationTest(t *testing.T, files map[string]string, script string, defines map[string]string) *runResult {
	t.Helper()
	base := t.TempDir()

	expanded := make(map[string]string, len(files))
	for name, content := range files {
		expanded[name] = os.Expand(content, func(k string) string {
			if k == "base" {
				return base
			}
			return "${" + k + "}"
		})
	}
	testutil.WriteFiles(t, base, expanded)

	bin := filepath.Join(base, "bin", "jspc")
	testutil.WriteFiles(t, base, map[string]string{"bin/jspc": script})
	require.NoError(t, os.Chmod(bin, 0o755))

	logs := &testutil.SafeBuffer{}
	cfg, err := app.NewConfig(app.Config{
		ConfigPath:  filepath.Join(base, "jspc.hcl"),
		RuntimeHome: testutil.FakeRuntime(t),
		Defines:     defines,
		LogLevel:    "debug",
		LogFormat:   "text",
	})
	require.NoError(t, err)

	res := &runResult{Base: base}
	res.App, res.Err = app.NewApp(logs, cfg, nil)
	if res.Err == nil {
		res.Report, res.Err = res.App.Run(context.Background())
	}
	res.LogOutput = logs.String()
	return res
}
