package matcher

import (
	"context"
	"io"

	"github.com/npillmayer/hanzi"
	"github.com/npillmayer/hanzi/store"
)

// Source provides reference descriptors. It is implemented by *store.Store.
type Source interface {
	Descriptors(store.Filter) hanzi.DescriptorReader
}

var _ Source = (*store.Store)(nil)

// Run runs one matching pass of input against the references of src and
// returns the best matches, best first.
//
// Cancellation of ctx is checked before every candidate; a cancelled pass
// returns ctx.Err() and no matches. An input without strokes yields an empty
// list.
func Run(ctx context.Context, src Source, input *hanzi.CharacterDescriptor, opts Options) ([]Match, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if input.StrokeCount == 0 || input.SubStrokeCount == 0 {
		return []Match{}, nil
	}
	lo, hi := StrokeRange(input.StrokeCount, opts.Looseness)
	scanner := src.Descriptors(store.Filter{
		Simplified:  opts.Simplified,
		Traditional: opts.Traditional,
		MinStrokes:  lo,
		MaxStrokes:  hi,
	})
	scorer := NewScorer(opts.Looseness)
	ranker := NewRanker(opts.MaxResults)
	scored := 0
	for {
		if err := ctx.Err(); err != nil {
			tracer().Debugf("matching cancelled after %d candidates", scored)
			return nil, err
		}
		candidate, err := scanner.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		scored++
		score, ok := scorer.ScoreBounded(input, candidate, ranker.Worst())
		if !ok {
			continue
		}
		ranker.Add(Match{
			Character: candidate.Character,
			Type:      candidate.Type,
			Score:     score,
		})
	}
	tracer().Debugf("scored %d candidates with %d..%d strokes, %d matches",
		scored, lo, hi, ranker.Len())
	return ranker.Matches(), nil
}
