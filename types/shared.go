package types

// Token is an atomic character or the concatenation of two earlier tokens.
// Tokens compare by value.
type Token string

// Word is the ordered token sequence of one whitespace-delimited unit of
// input text.
type Word []Token

// Words is a tokenized corpus, one Word per source word in source order.
type Words []Word

type Pair struct {
	Left  Token
	Right Token
}

// Joined returns the composite token that merging the pair produces.
func (pair Pair) Joined() Token {
	return pair.Left + pair.Right
}

// FrequencyEntry is a single token weight in a FrequencyTable.
type FrequencyEntry struct {
	Token Token
	Value float64
}

// FrequencyTable maps tokens to weights, either absolute counts or
// fractions of the total token count. Entries keep their insertion order.
type FrequencyTable struct {
	Relative bool
	entries  []FrequencyEntry
	index    map[Token]int
}
