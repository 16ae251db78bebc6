package subword_bpe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/subword_bpe/types"
)

func TestVocabulary_Add(t *testing.T) {
	vocab := NewVocabulary()
	assert.True(t, vocab.Add("th"))
	assert.True(t, vocab.Add("the"))
	assert.False(t, vocab.Add("th"))
	assert.Equal(t, 2, vocab.Len())
	assert.True(t, vocab.Contains("the"))
	assert.False(t, vocab.Contains("t"))
	assert.Equal(t, []string{"th", "the"}, vocab.Strings())

	data, err := json.Marshal(vocab)
	require.NoError(t, err)
	assert.JSONEq(t, `["th","the"]`, string(data))

	empty, err := json.Marshal(NewVocabulary())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}

func TestBuildFrequencyTable(t *testing.T) {
	corpus := Seed("abab ab", SeedOptions{})
	ApplyMerge(corpus, pair("a", "b"))
	vocab := NewVocabulary()
	vocab.Add("ab")
	vocab.Add("xy")

	table := BuildFrequencyTable(corpus, vocab, false)
	assert.False(t, table.Relative)
	assert.Equal(t, []types.FrequencyEntry{
		{Token: "ab", Value: 3},
		{Token: "xy", Value: 0},
	}, table.Entries())

	relative := BuildFrequencyTable(corpus, vocab, true)
	assert.True(t, relative.Relative)
	assert.Equal(t, []types.FrequencyEntry{
		{Token: "ab", Value: 1},
		{Token: "xy", Value: 0},
	}, relative.Entries())
}

func TestBuildFrequencyTable_Characters(t *testing.T) {
	table := BuildFrequencyTable(Seed("héé hé", SeedOptions{}), nil, true)
	assert.Equal(t, []types.FrequencyEntry{
		{Token: "h", Value: 2.0 / 5.0},
		{Token: "é", Value: 3.0 / 5.0},
	}, table.Entries())
}
