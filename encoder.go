package subword_bpe

import (
	"sort"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
	"github.com/wbrown/subword_bpe/types"
)

const BPE_LRU_SZ = 65536

// Encoder
// Tokenizes text by replaying a learned merge sequence over each word. A
// word is tokenized exactly as training tokenized it, since merges are
// applied in the order they were learned. Encodings are cached per word.
type Encoder struct {
	Merges    []types.Pair
	BpeRanks  map[types.Pair][]int
	Seed      SeedOptions
	Cache     *lru.ARCCache
	LruHits   atomic.Int64
	LruMisses atomic.Int64
}

// NewEncoder builds an Encoder from an ordered merge sequence.
func NewEncoder(merges []types.Pair, seed SeedOptions) *Encoder {
	bpeRanks := make(map[types.Pair][]int, len(merges))
	for rank, pair := range merges {
		bpeRanks[pair] = append(bpeRanks[pair], rank)
	}
	cache, _ := lru.NewARC(BPE_LRU_SZ)
	ordered := make([]types.Pair, len(merges))
	copy(ordered, merges)
	return &Encoder{
		Merges:   ordered,
		BpeRanks: bpeRanks,
		Seed:     seed,
		Cache:    cache,
	}
}

// Encoder returns an Encoder replaying this result's merges with the same
// word splitting the training run used.
func (result *Result) Encoder() *Encoder {
	pairs := make([]types.Pair, len(result.Merges))
	for idx := range result.Merges {
		pairs[idx] = result.Merges[idx].Pair
	}
	return NewEncoder(pairs, result.Seed)
}

// nextRank returns the lowest rank for pair that is above after, or -1.
func (encoder *Encoder) nextRank(pair types.Pair, after int) int {
	ranks, ok := encoder.BpeRanks[pair]
	if !ok {
		return -1
	}
	i := sort.SearchInts(ranks, after+1)
	if i == len(ranks) {
		return -1
	}
	return ranks[i]
}

// minPair returns the pair of word with the lowest rank above after.
func (encoder *Encoder) minPair(word types.Word, after int) (types.Pair,
	int) {
	var retPair types.Pair
	minRank := -1
	for idx := 1; idx < len(word); idx++ {
		pair := types.Pair{Left: word[idx-1], Right: word[idx]}
		rank := encoder.nextRank(pair, after)
		if rank == -1 {
			continue
		}
		if minRank == -1 || rank < minRank {
			retPair = pair
			minRank = rank
		}
	}
	return retPair, minRank
}

// ToBPE
// Given a single pre-split word, applies the merges in rank order and
// returns its tokens.
func (encoder *Encoder) ToBPE(text string) types.Word {
	if lookup, ok := encoder.Cache.Get(text); ok {
		encoder.LruHits.Add(1)
		return lookup.(types.Word).Clone()
	}
	encoder.LruMisses.Add(1)
	word := SeedWord(text, encoder.Seed.WordMarker)
	lastRank := -1
	for len(word) > 1 {
		bigram, rank := encoder.minPair(word, lastRank)
		if rank == -1 {
			break
		}
		word, _ = MergeWord(word, bigram)
		lastRank = rank
	}
	encoder.Cache.Add(text, word.Clone())
	return word
}

// Encode splits text into words the way training did and tokenizes each
// word.
func (encoder *Encoder) Encode(text string) types.Words {
	corpus := Seed(text, encoder.Seed)
	words := make(types.Words, 0, corpus.Len())
	for _, wordIdx := range corpus.occurrences {
		words = append(words, encoder.ToBPE(corpus.words[wordIdx].Text))
	}
	return words
}
