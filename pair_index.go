package subword_bpe

import (
	"sort"

	"github.com/wbrown/subword_bpe/types"
)

// pairIndex keeps pair counts up to date across merges by only revisiting
// the words that contain the merged pair, rather than recounting the whole
// corpus every step. For each pair it tracks which distinct words hold it
// and how often, so ties can be broken by first occurrence exactly as a
// full recount would.
type pairIndex struct {
	corpus *Corpus
	counts map[types.Pair]int
	where  map[types.Pair]map[int]int
}

func newPairIndex(corpus *Corpus) *pairIndex {
	index := &pairIndex{
		corpus: corpus,
		counts: make(map[types.Pair]int),
		where:  make(map[types.Pair]map[int]int),
	}
	for wordIdx, word := range corpus.Distinct() {
		index.addWord(wordIdx, word)
	}
	return index
}

func (index *pairIndex) addWord(wordIdx int, word *CorpusWord) {
	tokens := word.Tokens
	for i := 0; i < len(tokens)-1; i++ {
		if !pairable(tokens[i], tokens[i+1], index.corpus.wordMarker) {
			continue
		}
		pair := types.Pair{Left: tokens[i], Right: tokens[i+1]}
		index.counts[pair] += word.Weight
		locs, ok := index.where[pair]
		if !ok {
			locs = make(map[int]int)
			index.where[pair] = locs
		}
		locs[wordIdx]++
	}
}

func (index *pairIndex) removeWord(wordIdx int, word *CorpusWord) {
	tokens := word.Tokens
	for i := 0; i < len(tokens)-1; i++ {
		if !pairable(tokens[i], tokens[i+1], index.corpus.wordMarker) {
			continue
		}
		pair := types.Pair{Left: tokens[i], Right: tokens[i+1]}
		index.counts[pair] -= word.Weight
		if index.counts[pair] <= 0 {
			delete(index.counts, pair)
		}
		if locs, ok := index.where[pair]; ok {
			locs[wordIdx]--
			if locs[wordIdx] <= 0 {
				delete(locs, wordIdx)
			}
			if len(locs) == 0 {
				delete(index.where, pair)
			}
		}
	}
}

// firstPosition returns where pair is first met in a word-major,
// left-to-right scan of the corpus.
func (index *pairIndex) firstPosition(pair types.Pair) (int, int) {
	firstWord := -1
	for wordIdx := range index.where[pair] {
		if firstWord == -1 || wordIdx < firstWord {
			firstWord = wordIdx
		}
	}
	if firstWord == -1 {
		return -1, -1
	}
	tokens := index.corpus.Distinct()[firstWord].Tokens
	for i := 0; i < len(tokens)-1; i++ {
		if tokens[i] == pair.Left && tokens[i+1] == pair.Right {
			return firstWord, i
		}
	}
	return firstWord, -1
}

func positionLess(wordA, tokA, wordB, tokB int) bool {
	if wordA != wordB {
		return wordA < wordB
	}
	return tokA < tokB
}

// selectBest mirrors SelectBest over the maintained counts.
func (index *pairIndex) selectBest(minFrequency int) (types.Pair, int,
	bool) {
	count := 0
	tied := make([]types.Pair, 0, 4)
	for pair, c := range index.counts {
		if c > count {
			count = c
			tied = append(tied[:0], pair)
		} else if c == count {
			tied = append(tied, pair)
		}
	}
	if count == 0 || count < minFrequency {
		return types.Pair{}, count, false
	}
	best := tied[0]
	if len(tied) > 1 {
		bestWord, bestTok := index.firstPosition(best)
		for _, pair := range tied[1:] {
			word, tok := index.firstPosition(pair)
			if positionLess(word, tok, bestWord, bestTok) {
				best, bestWord, bestTok = pair, word, tok
			}
		}
	}
	return best, count, true
}

// merge applies pair to every word holding it and updates the counts from
// the before and after pairs of just those words. Returns the weighted
// number of replacements.
func (index *pairIndex) merge(pair types.Pair) int {
	locs := index.where[pair]
	if len(locs) == 0 {
		return 0
	}
	wordIdxs := make([]int, 0, len(locs))
	for wordIdx := range locs {
		wordIdxs = append(wordIdxs, wordIdx)
	}
	sort.Ints(wordIdxs)

	words := index.corpus.Distinct()
	total := 0
	for _, wordIdx := range wordIdxs {
		word := words[wordIdx]
		merged, n := MergeWord(word.Tokens, pair)
		if n == 0 {
			continue
		}
		index.removeWord(wordIdx, word)
		word.Tokens = merged
		index.addWord(wordIdx, word)
		total += n * word.Weight
	}
	return total
}

// snapshot returns the maintained counts as PairCounts, ordered as a full
// recount would order them.
func (index *pairIndex) snapshot() *PairCounts {
	type positioned struct {
		pair      types.Pair
		word, tok int
	}
	all := make([]positioned, 0, len(index.counts))
	for pair := range index.counts {
		word, tok := index.firstPosition(pair)
		all = append(all, positioned{pair, word, tok})
	}
	sort.Slice(all, func(i, j int) bool {
		return positionLess(all[i].word, all[i].tok, all[j].word, all[j].tok)
	})
	pc := newPairCounts(len(all))
	for _, p := range all {
		pc.add(p.pair, index.counts[p.pair])
	}
	return pc
}
