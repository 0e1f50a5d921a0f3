package main

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"
)

func TestRootCmd(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "png")

	f, err := os.Create(filepath.Join(in, "scan.tif"))
	require.NoError(t, err)
	require.NoError(t, tiff.Encode(f, image.NewGray(image.Rect(0, 0, 2, 2)), nil))
	require.NoError(t, f.Close())

	var buf bytes.Buffer
	cmd := newRootCmd(&buf)
	cmd.SetArgs([]string{"--input", in, "--output", out})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "Converted 1 images")
	assert.FileExists(t, filepath.Join(out, "scan.png"))
}

func TestRootCmd_MissingFlags(t *testing.T) {
	var buf bytes.Buffer
	cmd := newRootCmd(&buf)
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--input", t.TempDir()})
	assert.Error(t, cmd.Execute())
}
