// Package relevance decides whether a document meaningfully concerns a
// tracked entity. Community and organisation searches are already scoped by
// construction, so the verifier only runs for the remaining entity kinds.
package relevance

import (
	"regexp"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/t3rryhuang/Sentiment-Insight/logger"
)

// fuzzyThreshold is the 0..100 score a fuzzy comparison must exceed.
const fuzzyThreshold = 80

type Verifier struct {
	ann Annotator
}

func NewVerifier(ann Annotator) *Verifier {
	return &Verifier{ann: ann}
}

// IsRelevant runs the three-stage short-circuit check:
//  1. every whitespace token of entityName appears as a whole word, any order
//  2. a recognized ORG/GPE entity fuzzy-matches the name above 80
//  3. a sentence fuzzy-matches the name above 80 and carries at least one
//     verb and one noun, rejecting bare name-drops with no predicate
//
// Annotator failures degrade to the stages that still work; they never mark
// a document relevant on their own.
func (v *Verifier) IsRelevant(text, entityName string) bool {
	nameLower := strings.ToLower(entityName)
	textLower := strings.ToLower(text)

	if allTokensPresent(textLower, nameLower) {
		return true
	}

	ents, err := v.ann.Entities(text)
	if err != nil {
		logger.WarnWithFields("entity recognition failed", logger.Fields{"error": err.Error()})
	}
	for _, ent := range ents {
		if ent.Label != "ORG" && ent.Label != "GPE" {
			continue
		}
		if fuzzy.TokenSortRatio(nameLower, strings.ToLower(ent.Text)) > fuzzyThreshold {
			return true
		}
	}

	sentences, err := v.ann.Sentences(text)
	if err != nil {
		logger.WarnWithFields("sentence segmentation failed", logger.Fields{"error": err.Error()})
		return false
	}
	for _, sentence := range sentences {
		if fuzzy.TokenSortRatio(nameLower, strings.ToLower(sentence)) <= fuzzyThreshold {
			continue
		}
		tokens, err := v.ann.Tags(sentence)
		if err != nil {
			logger.WarnWithFields("pos tagging failed", logger.Fields{"error": err.Error()})
			continue
		}
		if hasVerb(tokens) && hasNoun(tokens) {
			return true
		}
	}

	return false
}

// allTokensPresent reports whether each whitespace token of name occurs as a
// whole word somewhere in text, independent of order.
func allTokensPresent(text, name string) bool {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return false
	}
	for _, token := range tokens {
		pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(token) + `\b`)
		if !pattern.MatchString(text) {
			return false
		}
	}
	return true
}

func hasVerb(tokens []PosToken) bool {
	for _, t := range tokens {
		if strings.HasPrefix(t.Tag, "VB") {
			return true
		}
	}
	return false
}

func hasNoun(tokens []PosToken) bool {
	for _, t := range tokens {
		if strings.HasPrefix(t.Tag, "NN") {
			return true
		}
	}
	return false
}
