package matcher

import (
	"fmt"
	"math"
	"sort"

	"github.com/npillmayer/hanzi"
)

// Match is a scored reference character.
type Match struct {
	Character rune
	Type      hanzi.CharacterType
	Score     float64
}

func (m Match) String() string {
	return fmt.Sprintf("%c(U+%04X, %.4f)", m.Character, m.Character, m.Score)
}

// Ranker is a bounded collection of the best matches, ascending by score.
// Matches of equal score keep their insertion order.
type Ranker struct {
	capacity int
	matches  []Match
}

// NewRanker creates a ranker for at most n matches. n < 1 is taken as 1.
func NewRanker(n int) *Ranker {
	n = max(n, 1)
	return &Ranker{
		capacity: n,
		matches:  make([]Match, 0, n+1),
	}
}

// Add inserts m at its place. A full ranker discards m without insertion if
// it does not score better than the current worst match; otherwise the worst
// match is evicted. Add reports whether m has been inserted.
func (r *Ranker) Add(m Match) bool {
	if r.Full() && m.Score >= r.matches[len(r.matches)-1].Score {
		return false
	}
	at := sort.Search(len(r.matches), func(i int) bool {
		return r.matches[i].Score > m.Score
	})
	r.matches = append(r.matches, Match{})
	copy(r.matches[at+1:], r.matches[at:])
	r.matches[at] = m
	if len(r.matches) > r.capacity {
		r.matches = r.matches[:r.capacity]
	}
	return true
}

// Full returns true if the ranker holds its maximum number of matches.
func (r *Ranker) Full() bool {
	return len(r.matches) >= r.capacity
}

// Worst returns the score a candidate has to beat to be inserted: the score
// of the worst match of a full ranker, +Inf otherwise.
func (r *Ranker) Worst() float64 {
	if !r.Full() {
		return math.Inf(1)
	}
	return r.matches[len(r.matches)-1].Score
}

// Len returns the number of matches held.
func (r *Ranker) Len() int {
	return len(r.matches)
}

// Matches returns a copy of the matches, best first.
func (r *Ranker) Matches() []Match {
	return append([]Match(nil), r.matches...)
}

// Characters returns the matched characters, best first.
func (r *Ranker) Characters() []rune {
	return Characters(r.matches)
}

// Characters extracts the characters of a list of matches.
func Characters(matches []Match) []rune {
	chars := make([]rune, len(matches))
	for i, m := range matches {
		chars[i] = m.Character
	}
	return chars
}
