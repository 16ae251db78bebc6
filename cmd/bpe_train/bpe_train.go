package main

import (
	"io"
	"os"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/dustin/go-humanize"
	"github.com/mylxsw/asteria/level"
	"github.com/mylxsw/asteria/log"
	"github.com/mylxsw/asteria/writer"
	"github.com/pkg/errors"
	"github.com/wbrown/subword_bpe"
	"github.com/wbrown/subword_bpe/resources"
)

// Report progress every this many merges.
const progressInterval = 500

type Args struct {
	Input           string `arg:"positional" default:"-" help:"input file path (use '-' for stdin, which is the default)"`
	NSteps          int    `arg:"-n,--nsteps" help:"number of BPE steps to perform"`
	Output          string `arg:"-o,--output" help:"output file prefix for vocabulary, tokens, and frequency table"`
	Relative        bool   `arg:"-r,--relative" help:"use relative frequencies instead of absolute counts"`
	Lowercase       bool   `arg:"-l,--lowercase" help:"lowercase the input text before processing"`
	Split           string `arg:"--split" default:"whitespace" help:"word splitting [whitespace, nonword, prose]"`
	MinFrequency    int    `arg:"--min-frequency" default:"1" help:"stop once the most frequent pair occurs fewer times than this"`
	Incremental     bool   `arg:"--incremental" help:"update pair counts incrementally instead of recounting every step"`
	Alphabet        bool   `arg:"--alphabet" help:"include the atomic characters in the vocabulary"`
	WordMarker      bool   `arg:"--word-marker" help:"prefix every word with a ▁ token that is never merged"`
	SortFrequencies bool   `arg:"--sort" help:"order the frequency table by descending count"`
	Debug           bool   `arg:"--debug" help:"log every merge with file and line"`
}

func (Args) Description() string {
	return "Byte Pair Encoding (BPE) tokenizer"
}

func defaultArgs() Args {
	return Args{NSteps: subword_bpe.DEFAULT_STEPS}
}

// validate checks the arguments and returns the training options they
// describe.
func (args Args) validate() (subword_bpe.Options, error) {
	if args.NSteps < 0 {
		return subword_bpe.Options{}, errors.New(
			"--nsteps must not be negative")
	}
	if args.MinFrequency < 1 {
		return subword_bpe.Options{}, errors.New(
			"--min-frequency must be at least 1")
	}
	split, ok := subword_bpe.ParseSplitMode(args.Split)
	if !ok {
		return subword_bpe.Options{}, errors.Errorf("invalid --split %q",
			args.Split)
	}
	return subword_bpe.Options{
		Steps:           args.NSteps,
		Relative:        args.Relative,
		LowerCase:       args.Lowercase,
		Split:           split,
		MinFrequency:    args.MinFrequency,
		Incremental:     args.Incremental,
		IncludeAlphabet: args.Alphabet,
		WordMarker:      args.WordMarker,
		SortFrequencies: args.SortFrequencies,
		Progress:        progressLogger(args.NSteps, args.Debug),
	}, nil
}

// configureLogging sends all log output to w, which must not be the
// stream the tokens are printed on. Debug lines are only kept in debug
// mode.
func configureLogging(w io.Writer, debug bool) {
	logLevel := level.Info
	if debug {
		logLevel = level.Debug
	}
	logWriter := writer.NewStreamWriter(w)
	log.DefaultLogWriter(logWriter)
	log.DefaultLogLevel(logLevel)
	log.DefaultWithFileLine(debug)
	// The main module may already exist and keeps its own copy.
	log.Default().Writer(logWriter).LogLevel(logLevel).WithFileLine(debug)
}

// run trains on the input named by args. Without an output prefix the
// tokens are printed to stdout, followed by a newline.
func run(args Args, stdin io.Reader, stdout io.Writer) error {
	opts, err := args.validate()
	if err != nil {
		return err
	}
	text, err := resources.ReadText(args.Input, stdin)
	if err != nil {
		return err
	}

	begin := time.Now()
	result := subword_bpe.Train(text, opts)
	duration := time.Since(begin).Seconds()
	log.Infof("%s merges of %s in %0.2fs, %s words, %s tokens",
		humanize.Comma(int64(result.Steps)),
		humanize.Comma(int64(result.Requested)), duration,
		humanize.Comma(int64(len(result.Tokens))),
		humanize.Comma(int64(result.Tokens.TokenCount())))

	if args.Output != "" {
		return resources.WriteOutputs(args.Output, result)
	}
	if _, err := resources.WriteTokens(stdout, result.Tokens); err != nil {
		return errors.Wrap(err, "writing tokens")
	}
	if _, err := io.WriteString(stdout, "\n"); err != nil {
		return errors.Wrap(err, "writing tokens")
	}
	return nil
}

func main() {
	args := defaultArgs()
	parser := arg.MustParse(&args)
	configureLogging(os.Stderr, args.Debug)
	if _, err := args.validate(); err != nil {
		parser.Fail(err.Error())
	}
	if err := run(args, os.Stdin, os.Stdout); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func progressLogger(total int, debug bool) func(int, subword_bpe.Merge) {
	return func(step int, merge subword_bpe.Merge) {
		if debug {
			log.Debugf("[step %d/%d] %q + %q -> %q (count %s)", step, total,
				merge.Pair.Left, merge.Pair.Right, merge.Token,
				humanize.Comma(int64(merge.Count)))
		} else if step%progressInterval == 0 || step == total {
			log.Infof("BPE steps: %s/%s", humanize.Comma(int64(step)),
				humanize.Comma(int64(total)))
		}
	}
}
