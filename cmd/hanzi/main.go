// Command hanzi compiles reference stroke corpora and recognizes written
// characters against them.
//
//	hanzi compile -strokes strokes.txt -types types.txt -out strokes.dat
//	hanzi recognize -store strokes.dat -input request.json [-n 10] [-looseness 0.3]
//	hanzi render -input request.json -out sketch.png [-size 256]
//	hanzi types -types types.txt -char 6f22
//
// Requests are JSON documents of the form
//
//	{"strokes": [{"x": [10, 50, 90], "y": [40, 41, 40]}]}
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"strconv"

	"github.com/npillmayer/hanzi"
	"github.com/npillmayer/hanzi/corpus"
	"github.com/npillmayer/hanzi/recognizer"
	"github.com/npillmayer/hanzi/sketch"
	"github.com/npillmayer/hanzi/store"
	"github.com/npillmayer/hanzi/typesfile"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

const usage = `usage: hanzi <command> [flags]

commands:
  compile    compile a strokes corpus and type relationships into a store
  recognize  recognize a written character against a store
  render     render a segmented written character to PNG
  types      show the type relationship of a character
`

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	var err error
	switch args[0] {
	case "compile":
		err = compile(args[1:], stdout, stderr)
	case "recognize":
		err = recognize(args[1:], stdout, stderr)
	case "render":
		err = render(args[1:], stdout, stderr)
	case "types":
		err = types(args[1:], stdout, stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "hanzi: unknown command %q\n%s", args[0], usage)
		return 2
	}
	if err == flag.ErrHelp {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "hanzi %s: %v\n", args[0], err)
		return 1
	}
	return 0
}

func compile(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		strokes   = fs.String("strokes", "", "reference strokes corpus (required)")
		typesPath = fs.String("types", "", "type relationship file")
		out       = fs.String("out", "strokes.dat", "output store")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *strokes == "" {
		return fmt.Errorf("missing -strokes")
	}
	lineErrors := 0
	stats, err := corpus.CompileFiles(*strokes, *typesPath, *out, func(e *hanzi.LineError) {
		lineErrors++
		fmt.Fprintln(stderr, e)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s: %d characters (generic %d, simplified %d, traditional %d), %d rejected, %d line errors\n",
		*out, stats.Total(), stats.Characters[store.GenericPartition],
		stats.Characters[store.SimplifiedPartition], stats.Characters[store.TraditionalPartition],
		stats.Rejected, lineErrors)
	return nil
}

func readRequest(path string) (recognizer.Request, error) {
	if path == "" || path == "-" {
		return recognizer.ParseRequest(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return recognizer.Request{}, err
	}
	defer f.Close()
	return recognizer.ParseRequest(f)
}

func recognize(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("recognize", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		storePath   = fs.String("store", "strokes.dat", "compiled stroke store")
		input       = fs.String("input", "-", "request JSON, - for stdin")
		n           = fs.Int("n", 15, "maximum number of results")
		looseness   = fs.Float64("looseness", 0.25, "tolerance for stroke count mismatch, in [0,1)")
		simplified  = fs.Bool("simplified", true, "include simplified characters")
		traditional = fs.Bool("traditional", true, "include traditional characters")
		scores      = fs.Bool("scores", false, "print scores")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	req, err := readRequest(*input)
	if err != nil {
		return err
	}
	st, err := store.Open(*storePath)
	if err != nil {
		return err
	}
	defer st.Close()
	rec, err := recognizer.New(st,
		recognizer.WithMaxResults(*n),
		recognizer.WithLooseness(*looseness),
		recognizer.WithSimplified(*simplified),
		recognizer.WithTraditional(*traditional),
	)
	if err != nil {
		return err
	}
	defer rec.Close()
	matches, err := rec.Match(context.Background(), req)
	if err != nil {
		return err
	}
	for _, m := range matches {
		if *scores {
			fmt.Fprintf(stdout, "%c\tU+%04X\t%s\t%.4f\n", m.Character, m.Character, m.Type, m.Score)
		} else {
			fmt.Fprintf(stdout, "%c\tU+%04X\n", m.Character, m.Character)
		}
	}
	return nil
}

func render(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		input = fs.String("input", "-", "request JSON, - for stdin")
		out   = fs.String("out", "sketch.png", "output PNG")
		size  = fs.Int("size", 256, "image size in pixels")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	req, err := readRequest(*input)
	if err != nil {
		return err
	}
	ch := req.Character()
	img := sketch.Render(ch, *size)
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err = png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	d := ch.Descriptor()
	fmt.Fprintf(stdout, "%s: %d strokes, %d sub-strokes\n", *out, d.StrokeCount, d.SubStrokeCount)
	return nil
}

func types(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("types", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		typesPath = fs.String("types", "", "type relationship file (required)")
		char      = fs.String("char", "", "code point in hex, or the character itself")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *typesPath == "" {
		return fmt.Errorf("missing -types")
	}
	f, err := os.Open(*typesPath)
	if err != nil {
		return err
	}
	defer f.Close()
	reg, err := typesfile.Load(f, func(e *hanzi.LineError) { fmt.Fprintln(stderr, e) })
	if err != nil {
		return err
	}
	if err = reg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
	}
	if *char == "" {
		fmt.Fprintf(stdout, "%d entries\n", reg.Len())
		return nil
	}
	r, err := parseChar(*char)
	if err != nil {
		return err
	}
	td, ok := reg.Lookup(r)
	if !ok {
		fmt.Fprintf(stdout, "%c U+%04X: %s\n", r, r, hanzi.NotFound)
		return nil
	}
	fmt.Fprintf(stdout, "%s, effective type %s\n", td, reg.EffectiveType(r))
	return nil
}

// parseChar accepts a hex code point or a single character.
func parseChar(s string) (rune, error) {
	if runes := []rune(s); len(runes) == 1 && runes[0] > 0x7F {
		return runes[0], nil
	}
	cp, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("not a BMP code point: %q", s)
	}
	return rune(cp), nil
}
