package subword_bpe

import (
	"github.com/wbrown/subword_bpe/types"
)

// PairCounts
// Weighted frequencies of adjacent token pairs across a corpus. The order
// in which each pair was first encountered is kept, since it decides ties
// in SelectBest.
type PairCounts struct {
	counts map[types.Pair]int
	order  []types.Pair
}

func newPairCounts(sizeHint int) *PairCounts {
	return &PairCounts{
		counts: make(map[types.Pair]int, sizeHint),
		order:  make([]types.Pair, 0, sizeHint),
	}
}

func (pc *PairCounts) add(pair types.Pair, weight int) {
	if _, ok := pc.counts[pair]; !ok {
		pc.order = append(pc.order, pair)
	}
	pc.counts[pair] += weight
}

// Get returns the count of pair, zero if it was never observed.
func (pc *PairCounts) Get(pair types.Pair) int {
	return pc.counts[pair]
}

func (pc *PairCounts) Len() int {
	return len(pc.order)
}

// Pairs returns the observed pairs in first-encountered order.
func (pc *PairCounts) Pairs() []types.Pair {
	pairs := make([]types.Pair, len(pc.order))
	copy(pairs, pc.order)
	return pairs
}

// Map returns the counts as a plain map.
func (pc *PairCounts) Map() map[types.Pair]int {
	m := make(map[types.Pair]int, len(pc.counts))
	for pair, count := range pc.counts {
		m[pair] = count
	}
	return m
}

// Equal reports whether both have identical pairs, counts and encounter
// order.
func (pc *PairCounts) Equal(other *PairCounts) bool {
	if len(pc.order) != len(other.order) {
		return false
	}
	for idx, pair := range pc.order {
		if other.order[idx] != pair || other.counts[pair] != pc.counts[pair] {
			return false
		}
	}
	return true
}

// addWord counts the adjacent pairs of word, each weighted.
func (pc *PairCounts) addWord(word types.Word, weight int, marker bool) {
	if len(word) < 2 {
		return
	}
	prev := word[0]
	for idx := 1; idx < len(word); idx++ {
		present := word[idx]
		if pairable(prev, present, marker) {
			pc.add(types.Pair{Left: prev, Right: present}, weight)
		}
		prev = present
	}
}

// CountPairs
// Counts every adjacent token pair in the corpus, each occurrence weighted
// by the multiplicity of its word. Words shorter than two tokens contribute
// nothing, and neither do pairs touching a word marker.
func CountPairs(corpus *Corpus) *PairCounts {
	pc := newPairCounts(corpus.DistinctLen())
	for _, word := range corpus.Distinct() {
		pc.addWord(word.Tokens, word.Weight, corpus.wordMarker)
	}
	return pc
}

// SelectBest
// Returns the pair with the highest count. Among pairs sharing that count,
// the one encountered first in a word-major, left-to-right scan wins.
// ok is false when there are no pairs, or when the best count is below
// minFrequency.
func SelectBest(pc *PairCounts, minFrequency int) (best types.Pair,
	count int, ok bool) {
	for _, pair := range pc.order {
		if c := pc.counts[pair]; c > count {
			best = pair
			count = c
		}
	}
	if count == 0 || count < minFrequency {
		return types.Pair{}, count, false
	}
	return best, count, true
}
