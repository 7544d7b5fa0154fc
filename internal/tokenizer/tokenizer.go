// Package tokenizer splits abstract text into sentences of whitespace
// separated tokens. Tokens are kept verbatim: no case folding, stemming or
// punctuation stripping, since target matching is exact-string.
package tokenizer

import (
	"strings"

	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/internal/abstract"
)

// Terminator is the token that closes a sentence.
const Terminator = "."

// Sentences splits text on whitespace and groups tokens into sentences. A
// token exactly equal to Terminator closes the current sentence and is kept
// as its last token. Tokens after the final terminator form an incomplete
// sentence and are dropped, so text without a standalone "." yields no
// sentences at all.
//
// Only ASCII whitespace (space, \t, \n, \v, \f, \r) separates tokens.
// Unicode spaces such as U+00A0 stay inside the token they appear in.
func Sentences(text string) []abstract.Sentence {
	words := strings.FieldsFunc(text, isASCIISpace)
	sentences := make([]abstract.Sentence, 0, len(words)/8+1)
	current := make(abstract.Sentence, 0, 16)
	for _, word := range words {
		current = append(current, word)
		if word == Terminator {
			sentences = append(sentences, current)
			current = make(abstract.Sentence, 0, 16)
		}
	}
	return sentences
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Vocabulary returns the set of distinct tokens across all sentences,
// terminators included.
func Vocabulary(sentences []abstract.Sentence) map[string]struct{} {
	vocab := make(map[string]struct{})
	for _, s := range sentences {
		for _, token := range s {
			vocab[token] = struct{}{}
		}
	}
	return vocab
}
