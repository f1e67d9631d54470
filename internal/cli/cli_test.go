package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		exit     bool
		code     int
		contains string
	}{
		{name: "help", args: []string{"-h"}, exit: true},
		{name: "no config", args: nil, exit: true},
		{name: "unknown flag", args: []string{"--nope"}, code: 2, contains: "unknown flag: --nope"},
		{name: "bad log format", args: []string{"-c", "jspc.hcl", "--log-format", "xml"}, code: 2, contains: "invalid log-format"},
		{name: "bad log level", args: []string{"jspc.hcl", "--log-level", "trace"}, code: 2, contains: "invalid log-level"},
		{name: "bad define", args: []string{"jspc.hcl", "-D", "=x"}, code: 2, contains: "invalid define"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			cfg, exit, err := Parse(tc.args, out)

			if tc.code != 0 {
				var exitErr *ExitError
				require.True(t, errors.As(err, &exitErr))
				assert.Equal(t, tc.code, exitErr.Code)
				assert.Contains(t, exitErr.Message, tc.contains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.exit, exit)
			assert.Nil(t, cfg)
			assert.Contains(t, out.String(), "Usage:")
		})
	}
}

func TestParse_Overrides(t *testing.T) {
	cfg, exit, err := Parse([]string{
		"--config", "build/jspc.yaml",
		"--skip",
		"--runtime-home", "/opt/jdk",
		"-D", "app.name=shop",
		"--define", "app.url=http://x/?a=b",
		"-D", "flag",
		"--log-level", "DEBUG",
		"--log-format", "json",
	}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, "build/jspc.yaml", cfg.ConfigPath)
	require.NotNil(t, cfg.Skip)
	assert.True(t, *cfg.Skip)
	assert.Equal(t, "/opt/jdk", cfg.RuntimeHome)
	assert.Equal(t, map[string]string{"app.name": "shop", "app.url": "http://x/?a=b", "flag": ""}, cfg.Defines)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestParse_PositionalAndDefaults(t *testing.T) {
	cfg, _, err := Parse([]string{"jspc.hcl"}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "jspc.hcl", cfg.ConfigPath)
	assert.Nil(t, cfg.Skip, "skip is unset unless the flag is given")
	assert.Empty(t, cfg.Defines)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}
