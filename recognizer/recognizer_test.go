package recognizer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/npillmayer/hanzi"
	"github.com/npillmayer/hanzi/corpus"
	"github.com/npillmayer/hanzi/matcher"
	"github.com/npillmayer/hanzi/store"
	"github.com/npillmayer/hanzi/worker"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func fixtureStore(t *testing.T) *store.Store {
	t.Helper()
	strokes, err := os.Open(filepath.Join("..", "testdata", "strokes.txt"))
	require.NoError(t, err)
	defer strokes.Close()
	types, err := os.Open(filepath.Join("..", "testdata", "types.txt"))
	require.NoError(t, err)
	defer types.Close()
	var out bytes.Buffer
	_, err = corpus.Compile(strokes, types, &out, nil)
	require.NoError(t, err)
	st, err := store.FromBytes(out.Bytes())
	require.NoError(t, err)
	return st
}

// horizontal is a single left-to-right stroke, like 一.
func horizontal() Request {
	return Request{Strokes: [][]hanzi.Point{
		{hanzi.Pt(10, 100), hanzi.Pt(60, 100), hanzi.Pt(110, 101), hanzi.Pt(190, 100)},
	}}
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest(strings.NewReader(`{"strokes":[{"x":[1,2,3],"y":[4,5,6]},{"x":[7],"y":[8]}]}`))
	require.NoError(t, err)
	require.Len(t, req.Strokes, 2)
	require.Equal(t, []hanzi.Point{hanzi.Pt(1, 4), hanzi.Pt(2, 5), hanzi.Pt(3, 6)}, req.Strokes[0])
	require.Nil(t, req.Options)

	req, err = ParseRequest(strings.NewReader(`{"strokes":[],"options":{"maxResults":3,"traditional":false}}`))
	require.NoError(t, err)
	require.NotNil(t, req.Options)
	require.Equal(t, 3, req.Options.MaxResults)
	require.False(t, req.Options.Traditional)
	require.True(t, req.Options.Simplified)
	require.Equal(t, 0.25, req.Options.Looseness)
}

func TestParseRequestErrors(t *testing.T) {
	_, err := ParseRequest(strings.NewReader(`{"strokes":[{"x":[1,2],"y":[4]}]}`))
	require.ErrorIs(t, err, ErrMalformedRequest)
	_, err = ParseRequest(strings.NewReader(`{"strokes":`))
	require.ErrorIs(t, err, ErrMalformedRequest)
}

func TestRequestJSONRoundTrip(t *testing.T) {
	req := horizontal()
	opts := matcher.DefaultOptions()
	opts.MaxResults = 4
	req.Options = &opts
	data, err := json.Marshal(req)
	require.NoError(t, err)
	back, err := ParseRequest(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, req, back)
}

func TestCharacterDropsShortStrokes(t *testing.T) {
	req := horizontal()
	req.Strokes = append(req.Strokes, []hanzi.Point{hanzi.Pt(5, 5)}, nil)
	c := req.Character()
	require.Equal(t, 1, c.StrokeCount())
	require.True(t, c.Strokes()[0].IsAnalyzed())
}

func TestRecognize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "hanzi.recognizer")
	defer teardown()
	//
	rec, err := New(fixtureStore(t), WithMaxResults(3))
	require.NoError(t, err)
	defer rec.Close()
	chars, err := rec.Recognize(context.Background(), horizontal())
	require.NoError(t, err)
	require.NotEmpty(t, chars)
	require.LessOrEqual(t, len(chars), 3)
	require.Equal(t, rune(0x4E00), chars[0])
}

func TestRecognizeEmpty(t *testing.T) {
	rec, err := New(fixtureStore(t))
	require.NoError(t, err)
	defer rec.Close()
	chars, err := rec.Recognize(context.Background(), Request{Strokes: [][]hanzi.Point{{hanzi.Pt(1, 1)}}})
	require.NoError(t, err)
	require.Empty(t, chars)
}

func TestOptions(t *testing.T) {
	rec, err := New(nil, WithLooseness(0.5), WithMaxResults(7), WithSimplified(false), WithTraditional(false))
	require.NoError(t, err)
	defer rec.Close()
	require.Equal(t, matcher.Options{Looseness: 0.5, MaxResults: 7}, rec.Options())
}

func TestInvalidOptionsAreRejected(t *testing.T) {
	rec, err := New(nil, WithLooseness(1.5))
	require.ErrorIs(t, err, matcher.ErrInvalidOptions)
	require.Nil(t, rec)
	_, err = New(nil, WithMaxResults(0))
	require.ErrorIs(t, err, matcher.ErrInvalidOptions)
}

func TestSubmit(t *testing.T) {
	rec, err := New(fixtureStore(t))
	require.NoError(t, err)
	defer rec.Close()
	results := make(chan worker.Result, 4)
	cancel := rec.Subscribe(func(r worker.Result) { results <- r })
	defer cancel()
	id := rec.Submit(horizontal())
	select {
	case r := <-results:
		require.Equal(t, id, r.JobID)
		require.NoError(t, r.Err)
		require.Equal(t, rune(0x4E00), r.Characters[0])
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for recognition result")
	}
}
