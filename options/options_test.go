package options

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glbatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseDefaults(t *testing.T) {
	o, err := Parse(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	require.NoError(t, err)
	assert.Equal(t, 1280, *o.Width)
	assert.Equal(t, 720, *o.Height)
	assert.Equal(t, 1024, *o.MaxQuads)
	assert.False(t, *o.GLES)
	assert.Empty(t, *o.VertexShader)
	assert.Zero(t, *o.Headless)
	assert.NoError(t, o.Validate())
}

func TestParseConfigFillsUnsetFlags(t *testing.T) {
	path := writeConfig(t, `
width: 640
height: 480
max-quads: 16
title: from config
translate: true
fragment: shaders/pulse.frag
`)
	o, err := Parse(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-config", path, "-width", "800"})
	require.NoError(t, err)

	assert.Equal(t, 800, *o.Width, "command line wins")
	assert.Equal(t, 480, *o.Height)
	assert.Equal(t, 16, *o.MaxQuads)
	assert.Equal(t, "from config", *o.Title)
	assert.True(t, *o.Translate)
	assert.Equal(t, "shaders/pulse.frag", *o.FragmentShader)
}

func TestParseConfigErrors(t *testing.T) {
	for name, content := range map[string]string{
		"unknown key": "depth: 3\n",
		"not scalar":  "title: [a, b]\n",
		"bad value":   "width: wide\n",
		"bad yaml":    "width: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, content)
			_, err := Parse(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-config", path})
			assert.Error(t, err)
		})
	}

	_, err := Parse(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.ErrorContains(t, err, "failed to read config")
}

func TestValidate(t *testing.T) {
	o, err := Parse(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-width", "0", "-max-quads", "20000", "-headless", "-1"})
	require.NoError(t, err)
	err = o.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window size")
	assert.Contains(t, err.Error(), "max-quads")
	assert.Contains(t, err.Error(), "headless")

	*o.Width, *o.MaxQuads, *o.Headless = 100, MaxIndexedVertices/6, 10
	assert.NoError(t, o.Validate())
}
