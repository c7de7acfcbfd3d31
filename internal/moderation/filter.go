// Package moderation implements the static keyword filter applied to
// user-generated text before persistence. Checking is a pure function over
// embedded word lists: no state, no I/O at call time.
package moderation

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed banned_words.yml
var bannedWordsYAML []byte

type wordLists struct {
	// Banned terms are rejected regardless of mode.
	Banned []string `yaml:"banned"`
	// Strict terms are additionally rejected when strict mode is on.
	Strict []string `yaml:"strict"`
}

var lists wordLists

func init() {
	if err := yaml.Unmarshal(bannedWordsYAML, &lists); err != nil {
		panic(fmt.Sprintf("moderation: invalid embedded word list: %v", err))
	}
}

// Result reports the outcome of a moderation check.
type Result struct {
	IsValid    bool     `json:"is_valid"`
	FoundWords []string `json:"found_words"`
}

// Check matches text case-insensitively against the banned list, plus the
// strict list when strict is true. FoundWords preserves list order and
// contains each matched term once.
func Check(text string, strict bool) Result {
	lowered := strings.ToLower(text)

	var found []string
	for _, term := range lists.Banned {
		if strings.Contains(lowered, strings.ToLower(term)) {
			found = append(found, term)
		}
	}
	if strict {
		for _, term := range lists.Strict {
			if strings.Contains(lowered, strings.ToLower(term)) {
				found = append(found, term)
			}
		}
	}

	return Result{IsValid: len(found) == 0, FoundWords: found}
}

// Filter replaces every character of every matched term (banned and strict)
// with replacement, preserving the text's length in runes.
func Filter(text string, replacement rune) string {
	runes := []rune(text)
	lowered := []rune(strings.ToLower(text))

	terms := make([]string, 0, len(lists.Banned)+len(lists.Strict))
	terms = append(terms, lists.Banned...)
	terms = append(terms, lists.Strict...)

	for _, term := range terms {
		needle := []rune(strings.ToLower(term))
		if len(needle) == 0 {
			continue
		}
		for i := 0; i+len(needle) <= len(lowered); i++ {
			if !runesEqual(lowered[i:i+len(needle)], needle) {
				continue
			}
			for j := i; j < i+len(needle); j++ {
				runes[j] = replacement
				lowered[j] = replacement
			}
		}
	}

	return string(runes)
}

func runesEqual(a, b []rune) bool {
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
