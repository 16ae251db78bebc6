package subword_bpe

import (
	"encoding/json"

	"github.com/wbrown/subword_bpe/types"
)

// Vocabulary
// Ordered, duplicate-free sequence of tokens. Insertion order is merge
// order.
type Vocabulary struct {
	tokens []types.Token
	seen   map[types.Token]struct{}
}

func NewVocabulary() *Vocabulary {
	return &Vocabulary{
		tokens: make([]types.Token, 0),
		seen:   make(map[types.Token]struct{}),
	}
}

// Add appends token, returning false when it is already present.
func (vocab *Vocabulary) Add(token types.Token) bool {
	if _, ok := vocab.seen[token]; ok {
		return false
	}
	vocab.seen[token] = struct{}{}
	vocab.tokens = append(vocab.tokens, token)
	return true
}

func (vocab *Vocabulary) Contains(token types.Token) bool {
	_, ok := vocab.seen[token]
	return ok
}

func (vocab *Vocabulary) Len() int {
	return len(vocab.tokens)
}

// Tokens returns a copy of the vocabulary in insertion order.
func (vocab *Vocabulary) Tokens() []types.Token {
	tokens := make([]types.Token, len(vocab.tokens))
	copy(tokens, vocab.tokens)
	return tokens
}

// Strings returns the vocabulary as plain strings.
func (vocab *Vocabulary) Strings() []string {
	strs := make([]string, len(vocab.tokens))
	for idx := range vocab.tokens {
		strs[idx] = string(vocab.tokens[idx])
	}
	return strs
}

// MarshalJSON renders the vocabulary as a JSON array in insertion order.
func (vocab *Vocabulary) MarshalJSON() ([]byte, error) {
	return json.Marshal(vocab.Strings())
}

// BuildFrequencyTable
// Counts every token of the corpus, weighted by word multiplicity. Tokens
// appear in first-appearance order, followed by any vocabulary entries no
// longer present in the corpus with a weight of zero. When relative is set,
// weights are divided by the corpus token total and sum to 1.
func BuildFrequencyTable(corpus *Corpus, vocab *Vocabulary,
	relative bool) types.FrequencyTable {
	counts := types.NewFrequencyTable(false)
	for _, word := range corpus.Distinct() {
		for _, token := range word.Tokens {
			counts.Add(token, float64(word.Weight))
		}
	}
	if vocab != nil {
		for _, token := range vocab.tokens {
			counts.Add(token, 0)
		}
	}
	if !relative {
		return counts
	}

	table := types.NewFrequencyTable(true)
	total := float64(corpus.TokenCount())
	for _, entry := range counts.Entries() {
		value := 0.0
		if total > 0 {
			value = entry.Value / total
		}
		table.Add(entry.Token, value)
	}
	return table
}
