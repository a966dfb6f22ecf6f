package corpus

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/hanzi"
	"github.com/npillmayer/hanzi/store"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func fixture(name string) string {
	return filepath.Join("..", "testdata", name)
}

func TestCompileFixture(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "hanzi.corpus")
	defer teardown()
	//
	out := filepath.Join(t.TempDir(), "strokes.dat")
	var lineErrors []*hanzi.LineError
	stats, err := CompileFiles(fixture("strokes.txt"), fixture("types.txt"), out,
		func(e *hanzi.LineError) { lineErrors = append(lineErrors, e) })
	require.NoError(t, err)
	require.Empty(t, lineErrors)
	require.Equal(t, 9, stats.Total())
	require.Equal(t, 1, stats.Characters[store.SimplifiedPartition])
	require.Equal(t, 1, stats.Characters[store.TraditionalPartition])

	st, err := store.Open(out)
	require.NoError(t, err)
	defer st.Close()
	sc := st.Scan(store.Filter{Simplified: true, MinStrokes: 5, MaxStrokes: 5})
	d, err := sc.Next()
	require.NoError(t, err)
	require.Equal(t, rune(0x6C49), d.Character)
	require.Equal(t, hanzi.Simplified, d.Type)
	_, err = sc.Next()
	require.Equal(t, io.EOF, err)
}

func TestCompileWithoutTypes(t *testing.T) {
	strokes, err := os.ReadFile(fixture("strokes.txt"))
	require.NoError(t, err)
	var out bytes.Buffer
	stats, err := Compile(bytes.NewReader(strokes), nil, &out, nil)
	require.NoError(t, err)
	require.Equal(t, 9, stats.Characters[store.GenericPartition])
	st, err := store.FromBytes(out.Bytes())
	require.NoError(t, err)
	require.Equal(t, 0, st.BucketSize(store.SimplifiedPartition, 5))
}

func TestCompileCollectsLineErrors(t *testing.T) {
	strokes := strings.NewReader("4e00 | (0.0,0.9)\n4e01 | (0.0,9.9)\n")
	types := strings.NewReader("4e00 | 0\n4e01 | 7\n")
	var lines []int
	var out bytes.Buffer
	stats, err := Compile(strokes, types, &out, func(e *hanzi.LineError) {
		lines = append(lines, e.Line)
	})
	require.NoError(t, err)
	require.Equal(t, []int{2, 2}, lines)
	require.Equal(t, 1, stats.Total())
}

func TestCompileFilesRemovesOutputOnError(t *testing.T) {
	out := filepath.Join(t.TempDir(), "strokes.dat")
	_, err := CompileFiles(fixture("does-not-exist.txt"), "", out, nil)
	require.Error(t, err)
	_, err = os.Stat(out)
	require.True(t, os.IsNotExist(err))
}
