package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/jspcgo/internal/hcl"
	"github.com/vk/jspcgo/internal/testutil"
	"github.com/vk/jspcgo/internal/translator"
	"github.com/vk/jspcgo/internal/yamlconfig"
)

const descriptor = `<web-app>
  <display-name>${app.name} @app.stage@ ${app.version}</display-name>
</web-app>`

func writeProject(t *testing.T, configName, configBody string) string {
	t.Helper()
	base := t.TempDir()
	testutil.WriteFiles(t, base, map[string]string{
		configName:                        configBody,
		"build.yaml":                      "app:\n  name: from-file\n  stage: dev\n  version: 0.1\n",
		"src/main/webapp/index.jsp":       "<html/>",
		"src/main/webapp/WEB-INF/web.xml": descriptor,
	})
	return filepath.Join(base, configName)
}

func TestNewConfig(t *testing.T) {
	_, err := NewConfig(Config{})
	require.Error(t, err)

	_, err = NewConfig(Config{ConfigPath: "jspc.hcl", Defines: map[string]string{" ": "x"}})
	require.Error(t, err)

	cfg, err := NewConfig(Config{ConfigPath: "jspc.hcl"})
	require.NoError(t, err)
	assert.Equal(t, "jspc.hcl", cfg.ConfigPath)
}

func TestLoaderFor(t *testing.T) {
	assert.IsType(t, &hcl.Loader{}, LoaderFor("jspc.hcl"))
	assert.IsType(t, &hcl.Loader{}, LoaderFor("jspc"))
	assert.IsType(t, &yamlconfig.Loader{}, LoaderFor("jspc.YAML"))
	assert.IsType(t, &yamlconfig.Loader{}, LoaderFor("jspc.yml"))
}

func TestApp_RunMergesPropertiesInOrder(t *testing.T) {
	path := writeProject(t, "jspc.hcl", `
project {
  properties       = { "app.name" = "shop", "app.stage" = "test" }
  properties_files = ["build.yaml"]
}
`)
	out := &testutil.SafeBuffer{}
	tr := &testutil.FakeTranslator{}

	a, err := NewApp(out, &Config{
		ConfigPath:  path,
		RuntimeHome: testutil.FakeRuntime(t),
		Defines:     map[string]string{"app.stage": "prod"},
		LogLevel:    "debug",
		LogFormat:   "text",
	}, nil, WithTranslator(tr))
	require.NoError(t, err)

	report, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.FileCount)
	require.Len(t, tr.Calls, 1)

	merged, err := os.ReadFile(a.Config().JSPC.OutputWebXML)
	require.NoError(t, err)
	assert.Contains(t, string(merged), "<display-name>shop prod 0.1</display-name>")
	assert.Contains(t, out.String(), "JSP pre-compilation finished.")
}

func TestApp_YAMLConfigAndSkipOverride(t *testing.T) {
	path := writeProject(t, "jspc.yaml", "jspc:\n  package_name: pages\n")
	skip := true
	tr := &testutil.FakeTranslator{}

	a, err := NewApp(&testutil.SafeBuffer{}, &Config{ConfigPath: path, Skip: &skip}, nil, WithTranslator(tr))
	require.NoError(t, err)
	assert.Equal(t, "pages", a.Config().JSPC.PackageName)

	report, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Skipped)
	assert.Empty(t, tr.Calls)
}

func TestNewApp_DefaultTranslatorIsCommand(t *testing.T) {
	path := writeProject(t, "jspc.hcl", `
jspc {
  trim_spaces = false
}
translator {
  command = "/opt/tomcat/bin/jspc.sh"
  args    = ["-J-Xmx512m"]
}
`)
	a, err := NewApp(&testutil.SafeBuffer{}, &Config{ConfigPath: path}, nil)
	require.NoError(t, err)

	cmd, ok := a.translator.(*translator.Command)
	require.True(t, ok)
	assert.Equal(t, "/opt/tomcat/bin/jspc.sh", cmd.Path)
	assert.Equal(t, []string{"-J-Xmx512m"}, cmd.Prefix)
	assert.False(t, cmd.Settings.TrimSpaces)
	assert.Equal(t, filepath.Dir(path), cmd.Dir)
}

func TestNewApp_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		file     string
		body     string
		contains string
	}{
		{name: "syntax", file: "jspc.hcl", body: "jspc {", contains: "failed to load configuration"},
		{name: "yaml unknown key", file: "jspc.yml", body: "nope: 1\n", contains: "failed to load configuration"},
		{name: "missing properties file", file: "jspc.hcl", body: `project { properties_files = ["absent.yaml"] }`, contains: "absent.yaml"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeProject(t, tc.file, tc.body)
			_, err := NewApp(&testutil.SafeBuffer{}, &Config{ConfigPath: path}, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}
