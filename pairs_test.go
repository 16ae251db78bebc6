package subword_bpe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/subword_bpe/types"
)

func pair(left, right string) types.Pair {
	return types.Pair{Left: types.Token(left), Right: types.Token(right)}
}

func TestCountPairs(t *testing.T) {
	pc := CountPairs(Seed("aaab", SeedOptions{}))
	assert.Equal(t, map[types.Pair]int{
		pair("a", "a"): 2,
		pair("a", "b"): 1,
	}, pc.Map())
	assert.Equal(t, []types.Pair{pair("a", "a"), pair("a", "b")}, pc.Pairs())
}

func TestCountPairs_Weighted(t *testing.T) {
	pc := CountPairs(Seed("ab ab cab", SeedOptions{}))
	assert.Equal(t, 3, pc.Get(pair("a", "b")))
	assert.Equal(t, 1, pc.Get(pair("c", "a")))
	assert.Equal(t, 0, pc.Get(pair("b", "c")))
	assert.Equal(t, 2, pc.Len())
}

func TestCountPairs_ShortWords(t *testing.T) {
	assert.Equal(t, 0, CountPairs(Seed("a b a b", SeedOptions{})).Len())
	assert.Equal(t, 0, CountPairs(Seed("", SeedOptions{})).Len())
}

func TestCountPairs_Idempotent(t *testing.T) {
	corpus := Seed(sampleText, SeedOptions{})
	first := CountPairs(corpus)
	second := CountPairs(corpus)
	assert.True(t, first.Equal(second))
	assert.Equal(t, first.Map(), second.Map())
}

type SelectTest struct {
	Name     string
	Input    string
	MinFreq  int
	Expected types.Pair
	Count    int
	Ok       bool
}

var SelectTests = []SelectTest{
	{"highest count wins", "aaab", 1, pair("a", "a"), 2, true},
	{"tie goes to first encountered", "ab cd", 1, pair("a", "b"), 1, true},
	{"tie order follows text, not lexicon", "cd ab", 1, pair("c", "d"), 1,
		true},
	{"tie within a word", "zyx", 1, pair("z", "y"), 1, true},
	{"later pair with higher count", "xy ab ab", 1, pair("a", "b"), 2, true},
	{"empty", "", 1, types.Pair{}, 0, false},
	{"single characters", "a b a b", 1, types.Pair{}, 0, false},
	{"below minimum frequency", "ab cd", 2, types.Pair{}, 1, false},
	{"at minimum frequency", "ab ab", 2, pair("a", "b"), 2, true},
}

func TestSelectBest(t *testing.T) {
	for _, test := range SelectTests {
		pc := CountPairs(Seed(test.Input, SeedOptions{}))
		best, count, ok := SelectBest(pc, test.MinFreq)
		require.Equal(t, test.Ok, ok, test.Name)
		assert.Equal(t, test.Count, count, test.Name)
		assert.Equal(t, test.Expected, best, test.Name)
	}
}
