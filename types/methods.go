package types

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

const (
	TokenSeparator = "_"
	WordSeparator  = "\n"
)

// Clone returns a copy of the word that shares no backing array.
func (word Word) Clone() Word {
	cloned := make(Word, len(word))
	copy(cloned, word)
	return cloned
}

// String renders the word as its tokens joined by TokenSeparator.
func (word Word) String() string {
	parts := make([]string, len(word))
	for idx := range word {
		parts[idx] = string(word[idx])
	}
	return strings.Join(parts, TokenSeparator)
}

// Strings returns the word's tokens as plain strings.
func (word Word) Strings() []string {
	parts := make([]string, len(word))
	for idx := range word {
		parts[idx] = string(word[idx])
	}
	return parts
}

// ToLines
// Renders the words one per line, each word's tokens joined with `_`.
func (words Words) ToLines() string {
	lines := make([]string, len(words))
	for idx := range words {
		lines[idx] = words[idx].String()
	}
	return strings.Join(lines, WordSeparator)
}

// TokenCount returns the total number of tokens across all words.
func (words Words) TokenCount() int {
	total := 0
	for idx := range words {
		total += len(words[idx])
	}
	return total
}

// NewFrequencyTable returns an empty table.
func NewFrequencyTable(relative bool) FrequencyTable {
	return FrequencyTable{
		Relative: relative,
		index:    make(map[Token]int),
	}
}

// Add increments token's weight by value, inserting the token at the end
// of the table if it is not present yet.
func (table *FrequencyTable) Add(token Token, value float64) {
	if table.index == nil {
		table.index = make(map[Token]int)
	}
	if idx, ok := table.index[token]; ok {
		table.entries[idx].Value += value
		return
	}
	table.index[token] = len(table.entries)
	table.entries = append(table.entries, FrequencyEntry{token, value})
}

// Get returns the weight for token and whether the token is in the table.
func (table FrequencyTable) Get(token Token) (float64, bool) {
	if idx, ok := table.index[token]; ok {
		return table.entries[idx].Value, true
	}
	return 0, false
}

func (table FrequencyTable) Len() int {
	return len(table.entries)
}

// Entries returns the table entries in insertion order.
func (table FrequencyTable) Entries() []FrequencyEntry {
	entries := make([]FrequencyEntry, len(table.entries))
	copy(entries, table.entries)
	return entries
}

// Total returns the sum of all weights in the table.
func (table FrequencyTable) Total() float64 {
	total := 0.0
	for idx := range table.entries {
		total += table.entries[idx].Value
	}
	return total
}

// SortByValue reorders the entries by descending weight. Entries of equal
// weight keep their relative order.
func (table *FrequencyTable) SortByValue() {
	sort.SliceStable(table.entries, func(i, j int) bool {
		return table.entries[i].Value > table.entries[j].Value
	})
	for idx := range table.entries {
		table.index[table.entries[idx].Token] = idx
	}
}

// Map returns the table as a plain map.
func (table FrequencyTable) Map() map[Token]float64 {
	m := make(map[Token]float64, len(table.entries))
	for _, entry := range table.entries {
		m[entry.Token] = entry.Value
	}
	return m
}

func formatValue(value float64, relative bool) string {
	if !relative {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'g', -1, 64)
}

// MarshalJSON renders the table as a JSON object in insertion order.
// Absolute tables are written as integers.
func (table FrequencyTable) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 16*len(table.entries)+2))
	buf.WriteByte('{')
	for idx, entry := range table.entries {
		if idx > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(entry.Token))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(formatValue(entry.Value, table.Relative))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
