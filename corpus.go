package subword_bpe

import (
	"github.com/wbrown/subword_bpe/types"
)

// CorpusWord is a distinct source word together with its current
// tokenization and the number of times it occurs in the source.
type CorpusWord struct {
	Text   string
	Tokens types.Word
	Weight int
}

// Corpus
// The ordered collection of words being trained on. Identical source words
// share one CorpusWord whose Weight is their multiplicity, and occurrences
// records the source order so that Words can expand them back.
type Corpus struct {
	words       []*CorpusWord
	lookup      map[string]int
	occurrences []int
	wordMarker  bool
}

func NewCorpus() *Corpus {
	return &Corpus{
		words:       make([]*CorpusWord, 0),
		lookup:      make(map[string]int),
		occurrences: make([]int, 0),
	}
}

// AddWord appends one occurrence of word to the corpus. Empty words are
// ignored.
func (corpus *Corpus) AddWord(word string) {
	if len(word) == 0 {
		return
	}
	idx, ok := corpus.lookup[word]
	if !ok {
		idx = len(corpus.words)
		corpus.lookup[word] = idx
		corpus.words = append(corpus.words, &CorpusWord{
			Text:   word,
			Tokens: SeedWord(word, corpus.wordMarker),
		})
	}
	corpus.words[idx].Weight++
	corpus.occurrences = append(corpus.occurrences, idx)
}

// Distinct returns the distinct words in first-appearance order. The
// returned words are owned by the corpus.
func (corpus *Corpus) Distinct() []*CorpusWord {
	return corpus.words
}

// Len returns the number of source words, duplicates included.
func (corpus *Corpus) Len() int {
	return len(corpus.occurrences)
}

// DistinctLen returns the number of distinct words.
func (corpus *Corpus) DistinctLen() int {
	return len(corpus.words)
}

// TokenCount returns the total number of tokens across all source words.
func (corpus *Corpus) TokenCount() int {
	total := 0
	for _, word := range corpus.words {
		total += len(word.Tokens) * word.Weight
	}
	return total
}

// Words
// Expands the corpus into one Word per source word, in source order. Each
// returned Word is a copy.
func (corpus *Corpus) Words() types.Words {
	words := make(types.Words, len(corpus.occurrences))
	for idx, wordIdx := range corpus.occurrences {
		words[idx] = corpus.words[wordIdx].Tokens.Clone()
	}
	return words
}

// Alphabet returns the atomic characters of the corpus in first-appearance
// order, the word marker included when the corpus uses one.
func (corpus *Corpus) Alphabet() []types.Token {
	seen := make(map[types.Token]struct{})
	alphabet := make([]types.Token, 0)
	for _, word := range corpus.words {
		for _, token := range SeedWord(word.Text, corpus.wordMarker) {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			alphabet = append(alphabet, token)
		}
	}
	return alphabet
}
