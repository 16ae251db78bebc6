package subword_bpe

import (
	"github.com/wbrown/subword_bpe/types"
)

// pos finds the index of the first occurrence of seek in word at or past
// index i.
func pos(word types.Word, seek types.Token, i int) int {
	for j, v := range word[i:] {
		if seek == v {
			return j + i
		}
	}
	return -1
}

// MergeWord
// Replaces every left-to-right, non-overlapping occurrence of pair in word
// with the pair's joined token. Scanning resumes after each replacement, so
// [a a a] merged on (a, a) gives [aa a]. The original word is returned
// unchanged when pair does not occur in it.
func MergeWord(word types.Word, pair types.Pair) (types.Word, int) {
	first := pair.Left
	second := pair.Right
	i := pos(word, first, 0)
	if i == -1 || !containsPairFrom(word, pair, i) {
		return word, 0
	}
	joined := pair.Joined()
	merges := 0
	newWord := make(types.Word, 0, len(word))
	for i = 0; i < len(word); {
		j := pos(word, first, i)
		if j == -1 {
			newWord = append(newWord, word[i:]...)
			break
		}
		newWord = append(newWord, word[i:j]...)
		i = j
		if i < len(word)-1 && word[i+1] == second {
			newWord = append(newWord, joined)
			merges++
			i += 2
		} else {
			newWord = append(newWord, word[i])
			i += 1
		}
	}
	return newWord, merges
}

// containsPairFrom reports whether pair occurs in word at or after index i.
func containsPairFrom(word types.Word, pair types.Pair, i int) bool {
	for ; i < len(word)-1; i++ {
		if word[i] == pair.Left && word[i+1] == pair.Right {
			return true
		}
	}
	return false
}

// ApplyMerge
// Merges pair in every word of the corpus, in place. Words that do not
// contain the pair are left untouched. Returns the number of replacements
// made, weighted by word multiplicity.
func ApplyMerge(corpus *Corpus, pair types.Pair) int {
	total := 0
	for _, word := range corpus.Distinct() {
		merged, n := MergeWord(word.Tokens, pair)
		if n == 0 {
			continue
		}
		word.Tokens = merged
		total += n * word.Weight
	}
	return total
}
