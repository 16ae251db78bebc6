//go:build !wasip1 && !js

package subword_bpe

import (
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
	"github.com/mylxsw/asteria/log"
)

// splitProse uses prose's tokenizer to split text into words. Tokens that
// are entirely whitespace are dropped. Should prose fail on the input, the
// text is split on whitespace instead.
func splitProse(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	doc, err := prose.NewDocument(
		text,
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		log.Warningf("prose tokenization failed, splitting on whitespace: %v",
			err)
		return strings.Fields(text)
	}
	docTokens := doc.Tokens()
	words := make([]string, 0, len(docTokens))
	for _, token := range docTokens {
		if strings.IndexFunc(token.Text, func(r rune) bool {
			return !unicode.IsSpace(r)
		}) < 0 {
			continue
		}
		words = append(words, token.Text)
	}
	return words
}
