package subword_bpe

import (
	"github.com/mylxsw/asteria/log"
	"github.com/wbrown/subword_bpe/types"
)

// DEFAULT_STEPS is the number of merges the command line trainer asks for
// when none is given.
const DEFAULT_STEPS = 100

type Phase uint8

const (
	Running Phase = iota
	Completed
	Exhausted
)

func (phase Phase) String() string {
	switch phase {
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

// Merge records one training step: the pair merged, the token it produced
// and the pair's count when it was selected.
type Merge struct {
	Pair  types.Pair
	Token types.Token
	Count int
}

// Options configures a training run. The zero value performs no merges and
// splits on whitespace.
type Options struct {
	Steps           int
	Relative        bool
	LowerCase       bool
	Split           SplitMode
	MinFrequency    int
	Incremental     bool
	IncludeAlphabet bool
	// WordMarker prefixes every word with WORD_MARKER.
	WordMarker bool
	// SortFrequencies orders the frequency table by descending weight
	// instead of first appearance.
	SortFrequencies bool
	// Progress, when set, is called after every merge.
	Progress func(step int, merge Merge)
}

// Result holds the artifacts of a finished training run.
type Result struct {
	Vocabulary  *Vocabulary
	Tokens      types.Words
	Frequencies types.FrequencyTable
	Merges      []Merge
	Steps       int
	Requested   int
	Phase       Phase
	Seed        SeedOptions
}

// Exhausted reports whether training ran out of mergeable pairs before
// performing the requested number of merges.
func (result *Result) Exhausted() bool {
	return result.Phase == Exhausted
}

// Trainer
// Drives the merge loop. Each Step counts pairs, selects the best one and
// applies it to the corpus. The trainer exclusively owns its corpus and
// vocabulary until Result is called.
type Trainer struct {
	opts   Options
	corpus *Corpus
	vocab  *Vocabulary
	index  *pairIndex
	merges []Merge
	step   int
	phase  Phase
}

// NewTrainer seeds a corpus from text and returns a trainer at step 0.
func NewTrainer(text string, opts Options) *Trainer {
	if opts.Steps < 0 {
		opts.Steps = 0
	}
	if opts.MinFrequency < 1 {
		opts.MinFrequency = 1
	}
	corpus := Seed(text, opts.seedOptions())
	return newTrainerFromCorpus(corpus, opts)
}

func (opts Options) seedOptions() SeedOptions {
	return SeedOptions{
		Split:      opts.Split,
		LowerCase:  opts.LowerCase,
		WordMarker: opts.WordMarker,
	}
}

func newTrainerFromCorpus(corpus *Corpus, opts Options) *Trainer {
	trainer := &Trainer{
		opts:   opts,
		corpus: corpus,
		vocab:  NewVocabulary(),
		merges: make([]Merge, 0, opts.Steps),
		phase:  Running,
	}
	if opts.IncludeAlphabet {
		for _, token := range corpus.Alphabet() {
			trainer.vocab.Add(token)
		}
	}
	if opts.Incremental {
		trainer.index = newPairIndex(corpus)
	}
	if opts.Steps == 0 {
		trainer.phase = Completed
	}
	return trainer
}

func (trainer *Trainer) Phase() Phase {
	return trainer.phase
}

func (trainer *Trainer) StepCount() int {
	return trainer.step
}

// Corpus returns the corpus being trained. It must not be mutated while
// the trainer is running.
func (trainer *Trainer) Corpus() *Corpus {
	return trainer.corpus
}

// PairCounts returns the current pair counts.
func (trainer *Trainer) PairCounts() *PairCounts {
	if trainer.index != nil {
		return trainer.index.snapshot()
	}
	return CountPairs(trainer.corpus)
}

func (trainer *Trainer) selectBest() (types.Pair, int, bool) {
	if trainer.index != nil {
		return trainer.index.selectBest(trainer.opts.MinFrequency)
	}
	return SelectBest(CountPairs(trainer.corpus), trainer.opts.MinFrequency)
}

func (trainer *Trainer) applyMerge(pair types.Pair) {
	if trainer.index != nil {
		trainer.index.merge(pair)
	} else {
		ApplyMerge(trainer.corpus, pair)
	}
}

// Step
// Performs a single transition. While Running it merges the best pair and
// advances, moving to Completed once the requested number of merges is
// reached, or to Exhausted when no pair qualifies. Returns the phase after
// the transition.
func (trainer *Trainer) Step() Phase {
	if trainer.phase != Running {
		return trainer.phase
	}
	pair, count, ok := trainer.selectBest()
	if !ok {
		trainer.phase = Exhausted
		return trainer.phase
	}
	trainer.applyMerge(pair)
	merge := Merge{Pair: pair, Token: pair.Joined(), Count: count}
	trainer.vocab.Add(merge.Token)
	trainer.merges = append(trainer.merges, merge)
	trainer.step++
	if trainer.opts.Progress != nil {
		trainer.opts.Progress(trainer.step, merge)
	}
	if trainer.step >= trainer.opts.Steps {
		trainer.phase = Completed
	}
	return trainer.phase
}

// Result builds the training artifacts from the trainer's current state.
func (trainer *Trainer) Result() *Result {
	merges := make([]Merge, len(trainer.merges))
	copy(merges, trainer.merges)
	frequencies := BuildFrequencyTable(trainer.corpus, trainer.vocab,
		trainer.opts.Relative)
	if trainer.opts.SortFrequencies {
		frequencies.SortByValue()
	}
	return &Result{
		Vocabulary:  trainer.vocab,
		Tokens:      trainer.corpus.Words(),
		Frequencies: frequencies,
		Merges:      merges,
		Steps:       trainer.step,
		Requested:   trainer.opts.Steps,
		Phase:       trainer.phase,
		Seed:        trainer.opts.seedOptions(),
	}
}

// Run steps the trainer until it reaches a terminal phase and returns the
// result.
func (trainer *Trainer) Run() *Result {
	for trainer.Step() == Running {
	}
	if trainer.phase == Exhausted {
		log.Warningf("encoding finished early after %d merges of %d "+
			"requested", trainer.step, trainer.opts.Steps)
	}
	return trainer.Result()
}

// Train
// Runs BPE training over text and returns the vocabulary, the tokenized
// words and the frequency table. Invalid UTF-8 in text is not rejected; see
// Seed.
func Train(text string, opts Options) *Result {
	return NewTrainer(text, opts).Run()
}
