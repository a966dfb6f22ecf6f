// Package corpus compiles a reference strokes corpus and a type relationship
// file into a binary stroke store in one call.
package corpus

import (
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/hanzi"
	"github.com/npillmayer/hanzi/store"
	"github.com/npillmayer/hanzi/strokesfile"
	"github.com/npillmayer/hanzi/typesfile"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'hanzi.corpus'
func tracer() tracing.Trace {
	return tracing.Select("hanzi.corpus")
}

// Compile reads a strokes corpus and type relationships and writes the
// compiled store to out. types may be nil, in which case every character is
// compiled as generic.
//
// Malformed lines of either input are passed to onError (which may be nil)
// and skipped. Equivalence cycles in the type data are reported but do not
// stop compilation; characters on a cycle are compiled as generic.
//
// Example usage:
//
//	strokes, _ := os.Open("strokes.txt")
//	types, _ := os.Open("types.txt")
//	out, _ := os.Create("strokes.dat")
//	stats, err := corpus.Compile(strokes, types, out, nil)
func Compile(strokes, types io.Reader, out io.Writer, onError func(*hanzi.LineError)) (store.Stats, error) {
	reg := hanzi.NewRegistry()
	if types != nil {
		var err error
		if reg, err = typesfile.Load(types, onError); err != nil {
			return store.Stats{}, fmt.Errorf("reading types: %w", err)
		}
		if err = reg.Validate(); err != nil {
			tracer().Errorf("type relationships: %v", err)
		}
	}
	compiler := store.NewCompiler(reg)
	if err := compiler.Compile(strokesfile.NewReader(strokes), onError); err != nil {
		return compiler.Stats(), fmt.Errorf("reading strokes: %w", err)
	}
	if _, err := compiler.WriteTo(out); err != nil {
		return compiler.Stats(), fmt.Errorf("writing store: %w", err)
	}
	return compiler.Stats(), nil
}

// CompileFiles is Compile for files. typesPath may be empty. The output file
// is created or truncated, and removed again if compilation fails.
func CompileFiles(strokesPath, typesPath, outPath string, onError func(*hanzi.LineError)) (store.Stats, error) {
	strokes, err := os.Open(strokesPath)
	if err != nil {
		return store.Stats{}, err
	}
	defer strokes.Close()
	var types io.Reader
	if typesPath != "" {
		f, err := os.Open(typesPath)
		if err != nil {
			return store.Stats{}, err
		}
		defer f.Close()
		types = f
	}
	out, err := os.Create(outPath)
	if err != nil {
		return store.Stats{}, err
	}
	stats, err := Compile(strokes, types, out, onError)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(outPath)
		return stats, err
	}
	tracer().Infof("wrote %s with %d characters", outPath, stats.Total())
	return stats, nil
}
