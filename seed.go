package subword_bpe

import (
	"regexp"
	"strings"

	"github.com/wbrown/subword_bpe/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type SplitMode uint8

const (
	SplitWhitespace SplitMode = iota
	SplitNonWord
	SplitProse
)

const NONWORD_REGEX = "[^\\p{L}\\p{N}_]+"

// WORD_MARKER is the token prepended to every word when
// SeedOptions.WordMarker is set.
const WORD_MARKER types.Token = "\u2581"

var nonWordPat = regexp.MustCompile(NONWORD_REGEX)

var splitModeNames = map[string]SplitMode{
	"whitespace": SplitWhitespace,
	"nonword":    SplitNonWord,
	"prose":      SplitProse,
}

// ParseSplitMode
// Returns the SplitMode for a name, one of `whitespace`, `nonword` or
// `prose`.
func ParseSplitMode(name string) (SplitMode, bool) {
	mode, ok := splitModeNames[strings.ToLower(name)]
	return mode, ok
}

func (mode SplitMode) String() string {
	for name, m := range splitModeNames {
		if m == mode {
			return name
		}
	}
	return "whitespace"
}

type SeedOptions struct {
	Split     SplitMode
	LowerCase bool
	// WordMarker prefixes each word with WORD_MARKER. Marker tokens never
	// take part in a merge, so they stay word-initial.
	WordMarker bool
}

// SplitWords splits text into words according to mode. Separators are
// discarded and empty pieces are dropped.
func SplitWords(text string, mode SplitMode) []string {
	switch mode {
	case SplitNonWord:
		pieces := nonWordPat.Split(text, -1)
		words := make([]string, 0, len(pieces))
		for _, piece := range pieces {
			if len(piece) > 0 {
				words = append(words, piece)
			}
		}
		return words
	case SplitProse:
		return splitProse(text)
	default:
		return strings.Fields(text)
	}
}

// SplitChars turns a word into a Word of its individual characters.
// Invalid UTF-8 bytes each become a U+FFFD token.
func SplitChars(word string) types.Word {
	chars := make(types.Word, 0, len(word))
	for _, r := range word {
		chars = append(chars, types.Token(r))
	}
	return chars
}

// SeedWord returns the initial Word for a single word, its characters
// preceded by WORD_MARKER when marker is set.
func SeedWord(word string, marker bool) types.Word {
	if !marker {
		return SplitChars(word)
	}
	chars := make(types.Word, 0, len(word)+1)
	chars = append(chars, WORD_MARKER)
	return append(chars, SplitChars(word)...)
}

// pairable reports whether two adjacent tokens may be merged. With word
// markers on, no pair touching a marker-led token is ever counted.
func pairable(left, right types.Token, marker bool) bool {
	if !marker {
		return true
	}
	return !strings.HasPrefix(string(left), string(WORD_MARKER)) &&
		!strings.HasPrefix(string(right), string(WORD_MARKER))
}

// Seed
// Builds the initial character-level corpus from text. text is expected to
// be valid UTF-8; invalid bytes become U+FFFD tokens, which no longer
// concatenate back to the source word.
func Seed(text string, opts SeedOptions) *Corpus {
	if opts.LowerCase {
		text = cases.Lower(language.Und).String(text)
	}
	corpus := NewCorpus()
	corpus.wordMarker = opts.WordMarker
	for _, word := range SplitWords(text, opts.Split) {
		corpus.AddWord(word)
	}
	return corpus
}
