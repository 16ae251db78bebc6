package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexflint/go-arg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/wbrown/subword_bpe"
)

func parseArgs(t *testing.T, argv ...string) Args {
	args := defaultArgs()
	parser, err := arg.NewParser(arg.Config{}, &args)
	require.NoError(t, err)
	require.NoError(t, parser.Parse(argv))
	return args
}

func TestArgs_Defaults(t *testing.T) {
	args := parseArgs(t)
	assert.Equal(t, "-", args.Input)
	assert.Equal(t, 100, args.NSteps)
	assert.Equal(t, "", args.Output)
	assert.Equal(t, "whitespace", args.Split)
	assert.Equal(t, 1, args.MinFrequency)
	assert.False(t, args.Relative)
	assert.False(t, args.Lowercase)

	opts, err := args.validate()
	require.NoError(t, err)
	assert.Equal(t, subword_bpe.DEFAULT_STEPS, opts.Steps)
	assert.Equal(t, subword_bpe.SplitWhitespace, opts.Split)
	assert.NotNil(t, opts.Progress)
}

func TestArgs_Flags(t *testing.T) {
	args := parseArgs(t, "corpus.txt", "-n", "7", "-o", "out", "-r", "-l",
		"--split", "NonWord", "--min-frequency", "2", "--incremental",
		"--alphabet", "--word-marker", "--sort")
	assert.Equal(t, "corpus.txt", args.Input)
	assert.Equal(t, "out", args.Output)

	opts, err := args.validate()
	require.NoError(t, err)
	assert.Equal(t, 7, opts.Steps)
	assert.True(t, opts.Relative)
	assert.True(t, opts.LowerCase)
	assert.Equal(t, subword_bpe.SplitNonWord, opts.Split)
	assert.Equal(t, 2, opts.MinFrequency)
	assert.True(t, opts.Incremental)
	assert.True(t, opts.IncludeAlphabet)
	assert.True(t, opts.WordMarker)
	assert.True(t, opts.SortFrequencies)
}

type ValidateTest struct {
	Name     string
	Argv     []string
	Expected string
}

var validateTests = []ValidateTest{
	{"negative steps", []string{"--nsteps=-1"}, "--nsteps"},
	{"zero min frequency", []string{"--min-frequency", "0"},
		"--min-frequency"},
	{"unknown split", []string{"--split", "bytes"}, "invalid --split"},
}

func TestArgs_Validate(t *testing.T) {
	for _, test := range validateTests {
		_, err := parseArgs(t, test.Argv...).validate()
		require.Error(t, err, test.Name)
		assert.Contains(t, err.Error(), test.Expected, test.Name)

		var stdout bytes.Buffer
		err = run(parseArgs(t, test.Argv...), strings.NewReader("ab"),
			&stdout)
		assert.Error(t, err, test.Name)
		assert.Empty(t, stdout.String(), test.Name)
	}
}

func TestRun_StdoutHoldsOnlyTokens(t *testing.T) {
	var logs bytes.Buffer
	configureLogging(&logs, true)
	defer configureLogging(os.Stderr, false)

	var stdout bytes.Buffer
	args := parseArgs(t, "-n", "50")
	require.NoError(t, run(args, strings.NewReader("hug pug"), &stdout))

	expected := subword_bpe.Train("hug pug", subword_bpe.Options{Steps: 50})
	assert.Equal(t, expected.Tokens.ToLines()+"\n", stdout.String())
	assert.Equal(t, "hug\npug\n", stdout.String())

	// Warnings, progress and debug lines all went to the log stream.
	assert.Contains(t, logs.String(), "encoding finished early")
	assert.Contains(t, logs.String(), "Read 7 B from <stdin>")
}

func TestRun_EmptyInput(t *testing.T) {
	configureLogging(&bytes.Buffer{}, false)
	defer configureLogging(os.Stderr, false)

	var stdout bytes.Buffer
	require.NoError(t, run(parseArgs(t), strings.NewReader(""), &stdout))
	assert.Equal(t, "\n", stdout.String())
}

func TestRun_OutputPrefix(t *testing.T) {
	configureLogging(&bytes.Buffer{}, false)
	defer configureLogging(os.Stderr, false)

	dir := t.TempDir()
	input := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(input, []byte("aaab aaab"), 0644))
	prefix := filepath.Join(dir, "run")

	var stdout bytes.Buffer
	args := parseArgs(t, input, "-n", "1", "-o", prefix, "--sort")
	require.NoError(t, run(args, nil, &stdout))
	assert.Empty(t, stdout.String())

	tokens, err := os.ReadFile(prefix + ".tokens.txt")
	require.NoError(t, err)
	assert.Equal(t, "aa_a_b\naa_a_b", string(tokens))

	vocab, err := os.ReadFile(prefix + ".vocab.json")
	require.NoError(t, err)
	assert.Equal(t, "aa", gjson.GetBytes(vocab, "0").String())

	freqs, err := os.ReadFile(prefix + ".freqs.json")
	require.NoError(t, err)
	assert.Equal(t, int64(2), gjson.GetBytes(freqs, "aa").Int())
	assert.Equal(t, int64(2), gjson.GetBytes(freqs, "a").Int())
	assert.Equal(t, int64(2), gjson.GetBytes(freqs, "b").Int())
}

func TestRun_MissingInput(t *testing.T) {
	configureLogging(&bytes.Buffer{}, false)
	defer configureLogging(os.Stderr, false)

	var stdout bytes.Buffer
	err := run(parseArgs(t, filepath.Join(t.TempDir(), "missing.txt")), nil,
		&stdout)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening input")
	assert.Empty(t, stdout.String())
}
