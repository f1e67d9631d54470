package jspcargs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_FullOrder(t *testing.T) {
	fragment, err := filepath.Abs(filepath.Join("target", "web-fragment.xml"))
	require.NoError(t, err)

	req, err := NewRequest(Request{
		SourceRoot:   "src/main/webapp",
		OutputDir:    "target/jsp-source",
		Encoding:     "ISO-8859-1",
		PackageName:  "jsp",
		Classpath:    []string{"a.jar", "b.jar"},
		FragmentPath: filepath.Join("target", "web-fragment.xml"),
		ShowSuccess:  true,
		ListErrors:   true,
		Sources:      []string{"index.jsp", "admin/users.jsp"},
	})
	require.NoError(t, err)

	args, err := Assemble(req)
	require.NoError(t, err)

	expected := []string{
		"-uriroot", "src/main/webapp",
		"-d", "target/jsp-source",
		"-javaEncoding", "ISO-8859-1",
		"-s",
		"-l",
		"-webinc", fragment,
		"-p", "jsp",
		"-classpath", "a.jar" + string(os.PathListSeparator) + "b.jar",
		filepath.Join("src/main/webapp", "index.jsp"),
		filepath.Join("src/main/webapp", "admin/users.jsp"),
	}
	assert.Equal(t, expected, args.Tokens)
	assert.Equal(t, 2, args.SourceCount)
}

func TestAssemble_OptionalTokensOmitted(t *testing.T) {
	req, err := NewRequest(Request{
		SourceRoot:   "web",
		OutputDir:    "out",
		PackageName:  "pages",
		FragmentPath: "/tmp/frag.xml",
	})
	require.NoError(t, err)

	args, err := Assemble(req)
	require.NoError(t, err)

	assert.NotContains(t, args.Tokens, "-javaEncoding")
	assert.NotContains(t, args.Tokens, "-s")
	assert.NotContains(t, args.Tokens, "-l")
	assert.Equal(t, []string{
		"-uriroot", "web",
		"-d", "out",
		"-webinc", "/tmp/frag.xml",
		"-p", "pages",
		"-classpath", "",
	}, args.Tokens)
	assert.Zero(t, args.SourceCount)
}

func TestNewRequest_MissingPaths(t *testing.T) {
	testCases := []struct {
		name  string
		req   Request
		field string
	}{
		{name: "missing source root", req: Request{OutputDir: "out"}, field: "source directory"},
		{name: "missing output dir", req: Request{SourceRoot: "web"}, field: "working directory"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRequest(tc.req)
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tc.field, cfgErr.Field)

			_, err = Assemble(&tc.req)
			require.True(t, errors.As(err, &cfgErr))
		})
	}
}

func TestNewRequest_CopiesSlices(t *testing.T) {
	classpath := []string{"a.jar"}
	req, err := NewRequest(Request{SourceRoot: "web", OutputDir: "out", Classpath: classpath})
	require.NoError(t, err)

	classpath[0] = "mutated.jar"
	assert.Equal(t, []string{"a.jar"}, req.Classpath)
}
