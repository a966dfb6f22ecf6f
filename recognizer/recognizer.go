/*
Package recognizer is the request boundary of character recognition: raw pen
strokes and options in, ranked characters out.

Synchronous use:

	st, _ := store.Open("strokes.dat")
	rec, err := recognizer.New(st, recognizer.WithMaxResults(10))
	if err != nil {
	    return err
	}
	defer rec.Close()
	chars, err := rec.Recognize(ctx, req)

Interactive clients, which re-submit the character after every stroke, use
Submit and Subscribe instead: only the latest submission produces a result.
*/
package recognizer

import (
	"context"

	"github.com/npillmayer/hanzi/matcher"
	"github.com/npillmayer/hanzi/worker"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'hanzi.recognizer'
func tracer() tracing.Trace {
	return tracing.Select("hanzi.recognizer")
}

// Option configures a Recognizer.
type Option func(*matcher.Options)

// WithLooseness sets the tolerance for stroke and sub-stroke count mismatch,
// in [0, 1). Higher values find more candidates but match slower.
func WithLooseness(looseness float64) Option {
	return func(o *matcher.Options) {
		o.Looseness = looseness
	}
}

// WithMaxResults sets the maximum number of characters returned.
func WithMaxResults(n int) Option {
	return func(o *matcher.Options) {
		o.MaxResults = n
	}
}

// WithSimplified includes or excludes simplified characters.
func WithSimplified(include bool) Option {
	return func(o *matcher.Options) {
		o.Simplified = include
	}
}

// WithTraditional includes or excludes traditional characters.
func WithTraditional(include bool) Option {
	return func(o *matcher.Options) {
		o.Traditional = include
	}
}

// Recognizer matches written characters against a reference source.
type Recognizer struct {
	src    matcher.Source
	opts   matcher.Options
	worker *worker.Worker
}

// New creates a recognizer for src, starting from matcher.DefaultOptions.
// It returns an error wrapping matcher.ErrInvalidOptions if the options are
// out of range. Clients should call Close when done.
func New(src matcher.Source, opts ...Option) (*Recognizer, error) {
	o := matcher.DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &Recognizer{
		src:    src,
		opts:   o,
		worker: worker.New(src),
	}, nil
}

// Options returns the recognizer's default options.
func (rec *Recognizer) Options() matcher.Options {
	return rec.opts
}

func (rec *Recognizer) job(req Request) worker.Job {
	opts := rec.opts
	if req.Options != nil {
		opts = *req.Options
	}
	return worker.Job{
		Input:   req.Character().Descriptor(),
		Options: opts,
	}
}

// Recognize matches req and returns the best characters, best first.
// A request without usable strokes yields an empty list.
func (rec *Recognizer) Recognize(ctx context.Context, req Request) ([]rune, error) {
	matches, err := rec.Match(ctx, req)
	if err != nil {
		return nil, err
	}
	return matcher.Characters(matches), nil
}

// Match is Recognize with scores.
func (rec *Recognizer) Match(ctx context.Context, req Request) ([]matcher.Match, error) {
	job := rec.job(req)
	return matcher.Run(ctx, rec.src, job.Input, job.Options)
}

// Submit queues req for asynchronous matching, superseding earlier
// submissions, and returns the job id. Results are delivered to subscribers.
func (rec *Recognizer) Submit(req Request) uint64 {
	return rec.worker.Submit(rec.job(req))
}

// Subscribe registers a handler for the results of Submit.
func (rec *Recognizer) Subscribe(handler func(worker.Result)) (cancel func()) {
	return rec.worker.Subscribe(handler)
}

// Close stops asynchronous matching.
func (rec *Recognizer) Close() {
	rec.worker.Close()
}
