package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func fixture(name string) string {
	return filepath.Join("..", "..", "testdata", name)
}

func runCommand(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

const request = `{"strokes":[{"x":[10,60,110,190],"y":[100,100,101,100]}]}`

func TestCompileAndRecognize(t *testing.T) {
	dir := t.TempDir()
	storePath := filepath.Join(dir, "strokes.dat")
	code, out, errs := runCommand(t, "compile",
		"-strokes", fixture("strokes.txt"), "-types", fixture("types.txt"), "-out", storePath)
	require.Equal(t, 0, code, errs)
	require.Contains(t, out, "9 characters")

	reqPath := filepath.Join(dir, "request.json")
	require.NoError(t, os.WriteFile(reqPath, []byte(request), 0o644))
	code, out, errs = runCommand(t, "recognize", "-store", storePath, "-input", reqPath, "-n", "3")
	require.Equal(t, 0, code, errs)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.LessOrEqual(t, len(lines), 3)
	require.True(t, strings.HasPrefix(lines[0], "一\tU+4E00"), lines[0])
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	reqPath := filepath.Join(dir, "request.json")
	require.NoError(t, os.WriteFile(reqPath, []byte(request), 0o644))
	pngPath := filepath.Join(dir, "sketch.png")
	code, out, errs := runCommand(t, "render", "-input", reqPath, "-out", pngPath, "-size", "64")
	require.Equal(t, 0, code, errs)
	require.Contains(t, out, "1 strokes, 1 sub-strokes")
	info, err := os.Stat(pngPath)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestTypes(t *testing.T) {
	code, out, _ := runCommand(t, "types", "-types", fixture("types.txt"), "-char", "6c49")
	require.Equal(t, 0, code)
	require.Contains(t, out, "U+6C49 simplified → U+6F22")
	code, out, _ = runCommand(t, "types", "-types", fixture("types.txt"), "-char", "漢")
	require.Equal(t, 0, code)
	require.Contains(t, out, "effective type traditional")
	code, out, _ = runCommand(t, "types", "-types", fixture("types.txt"))
	require.Equal(t, 0, code)
	require.Equal(t, "3 entries\n", out)
}

func TestUsage(t *testing.T) {
	code, _, errs := runCommand(t)
	require.Equal(t, 2, code)
	require.Contains(t, errs, "usage")
	code, _, _ = runCommand(t, "bogus")
	require.Equal(t, 2, code)
	code, _, _ = runCommand(t, "compile")
	require.Equal(t, 1, code)
}
