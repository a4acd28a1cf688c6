package relevance_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/t3rryhuang/Sentiment-Insight/relevance"
)

// fakeAnnotator serves canned NLP results so each verifier stage can be
// exercised in isolation.
type fakeAnnotator struct {
	entities  []relevance.NamedEntity
	sentences []string
	tags      map[string][]relevance.PosToken
	err       error
}

func (f *fakeAnnotator) Entities(text string) ([]relevance.NamedEntity, error) {
	return f.entities, f.err
}

func (f *fakeAnnotator) Sentences(text string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.sentences != nil {
		return f.sentences, nil
	}
	return strings.Split(text, ". "), nil
}

func (f *fakeAnnotator) Tags(sentence string) ([]relevance.PosToken, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tags[sentence], nil
}

func TestIsRelevantWholeWordTokens(t *testing.T) {
	v := relevance.NewVerifier(&fakeAnnotator{})

	assert.True(t, v.IsRelevant("XYZ Corp announced layoffs today", "XYZ Corp"))
	// token order does not matter
	assert.True(t, v.IsRelevant("corp xyz announced layoffs today", "XYZ Corp"))
}

func TestIsRelevantCasualMentionNotRelevant(t *testing.T) {
	v := relevance.NewVerifier(&fakeAnnotator{})

	// "corporation" never appears and no entity or sentence stage fires
	assert.False(t, v.IsRelevant("I love xyz products", "XYZ Corporation"))
}

func TestIsRelevantRejectsSubstringTokens(t *testing.T) {
	// "xyz" only occurs inside "xyzzy", which a whole-word match must not hit,
	// and no other stage fires
	v := relevance.NewVerifier(&fakeAnnotator{})
	assert.False(t, v.IsRelevant("xyzzy corp posted numbers", "XYZ Corp"))
}

func TestIsRelevantFuzzyEntityMatch(t *testing.T) {
	// token sort makes word order irrelevant in the comparison
	ann := &fakeAnnotator{
		entities: []relevance.NamedEntity{
			{Text: "Corp Acme", Label: "ORG"},
		},
	}
	v := relevance.NewVerifier(ann)

	assert.True(t, v.IsRelevant("the firm reported record profits", "Acme Corp"))
}

func TestIsRelevantIgnoresNonOrgEntities(t *testing.T) {
	ann := &fakeAnnotator{
		entities: []relevance.NamedEntity{
			{Text: "Acme Corp", Label: "PERSON"},
		},
	}
	v := relevance.NewVerifier(ann)

	assert.False(t, v.IsRelevant("the firm reported record profits", "Acme Corp"))
}

func TestIsRelevantSentenceStageNeedsVerbAndNoun(t *testing.T) {
	sentence := "acme corp"

	// bare name-drop: the sentence fuzzy-matches but carries no verb
	ann := &fakeAnnotator{
		sentences: []string{sentence},
		tags: map[string][]relevance.PosToken{
			sentence: {
				{Text: "acme", Tag: "NNP"},
				{Text: "corp", Tag: "NNP"},
			},
		},
	}
	v := relevance.NewVerifier(ann)
	assert.False(t, v.IsRelevant("unrelated text", "acme corp"))

	// the same sentence tagged with a predicate passes
	ann = &fakeAnnotator{
		sentences: []string{sentence},
		tags: map[string][]relevance.PosToken{
			sentence: {
				{Text: "acme", Tag: "NNP"},
				{Text: "corp", Tag: "NNP"},
				{Text: "stumbled", Tag: "VBD"},
			},
		},
	}
	v = relevance.NewVerifier(ann)
	assert.True(t, v.IsRelevant("unrelated text", "acme corp"))
}

func TestIsRelevantAnnotatorFailureDegrades(t *testing.T) {
	v := relevance.NewVerifier(&fakeAnnotator{err: errors.New("model unavailable")})

	// stage 1 still works without the annotator
	assert.True(t, v.IsRelevant("xyz corp announced layoffs", "XYZ Corp"))
	// nothing else can fire
	assert.False(t, v.IsRelevant("completely unrelated", "XYZ Corp"))
}
