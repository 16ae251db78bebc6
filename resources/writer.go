package resources

import (
	"encoding/json"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mylxsw/asteria/log"
	"github.com/pkg/errors"
	"github.com/wbrown/subword_bpe"
	"github.com/wbrown/subword_bpe/types"
)

const (
	VocabSuffix  = ".vocab.json"
	TokensSuffix = ".tokens.txt"
	FreqsSuffix  = ".freqs.json"
)

// WriteCounter counts the number of bytes written through it.
type WriteCounter struct {
	Total uint64
}

func (wc *WriteCounter) Write(p []byte) (int, error) {
	n := len(p)
	wc.Total += uint64(n)
	return n, nil
}

// OutputPaths
// Returns the vocabulary, tokens and frequency table paths for an output
// prefix.
func OutputPaths(prefix string) (vocab, tokens, freqs string) {
	return prefix + VocabSuffix, prefix + TokensSuffix, prefix + FreqsSuffix
}

// MarshalVocabulary renders the vocabulary as an indented JSON array in
// merge order.
func MarshalVocabulary(vocab *subword_bpe.Vocabulary) ([]byte, error) {
	return json.MarshalIndent(vocab.Strings(), "", "  ")
}

// MarshalFrequencies renders the frequency table as an indented JSON
// object in table order.
func MarshalFrequencies(table types.FrequencyTable) ([]byte, error) {
	return json.MarshalIndent(table, "", "  ")
}

// WriteTokens writes the tokens rendering, one word per line with tokens
// joined by `_`.
func WriteTokens(w io.Writer, words types.Words) (int64, error) {
	n, err := io.WriteString(w, words.ToLines())
	return int64(n), err
}

func writeFile(path string, write func(io.Writer) error) error {
	handle, err := os.OpenFile(path, os.O_TRUNC|os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return errors.Wrapf(err, "error opening '%s' for write", path)
	}
	counter := &WriteCounter{}
	if err := write(io.MultiWriter(handle, counter)); err != nil {
		handle.Close()
		return errors.Wrapf(err, "error writing '%s'", path)
	}
	if err := handle.Close(); err != nil {
		return errors.Wrapf(err, "error closing '%s'", path)
	}
	log.Infof("Wrote %s... %s completed.", path, humanize.Bytes(counter.Total))
	return nil
}

func writeBytes(data []byte) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}
}

// WriteOutputs
// Writes the vocabulary, tokens and frequency table of result to the files
// named by prefix.
func WriteOutputs(prefix string, result *subword_bpe.Result) error {
	vocabPath, tokensPath, freqsPath := OutputPaths(prefix)

	vocabJson, err := MarshalVocabulary(result.Vocabulary)
	if err != nil {
		return errors.Wrap(err, "cannot marshal vocabulary")
	}
	if err := writeFile(vocabPath, writeBytes(vocabJson)); err != nil {
		return err
	}

	if err := writeFile(tokensPath, func(w io.Writer) error {
		_, err := WriteTokens(w, result.Tokens)
		return err
	}); err != nil {
		return err
	}

	freqsJson, err := MarshalFrequencies(result.Frequencies)
	if err != nil {
		return errors.Wrap(err, "cannot marshal frequency table")
	}
	return writeFile(freqsPath, writeBytes(freqsJson))
}
