package relevance

import (
	"github.com/jdkato/prose/v2"
)

// NamedEntity is a recognized span with its NER label (e.g. ORG, GPE).
type NamedEntity struct {
	Text  string
	Label string
}

// PosToken is a token with its Penn Treebank part-of-speech tag.
type PosToken struct {
	Text string
	Tag  string
}

// Annotator is the NLP collaborator the verifier depends on: named entities,
// sentence segmentation and part-of-speech tags. Kept as an interface so the
// verifier stages can be tested without a model.
type Annotator interface {
	Entities(text string) ([]NamedEntity, error)
	Sentences(text string) ([]string, error)
	Tags(sentence string) ([]PosToken, error)
}

// ProseAnnotator implements Annotator on top of jdkato/prose.
type ProseAnnotator struct{}

func NewProseAnnotator() *ProseAnnotator {
	return &ProseAnnotator{}
}

func (a *ProseAnnotator) Entities(text string) ([]NamedEntity, error) {
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, err
	}
	var out []NamedEntity
	for _, ent := range doc.Entities() {
		out = append(out, NamedEntity{Text: ent.Text, Label: ent.Label})
	}
	return out, nil
}

func (a *ProseAnnotator) Sentences(text string) ([]string, error) {
	doc, err := prose.NewDocument(text, prose.WithTagging(false), prose.WithExtraction(false))
	if err != nil {
		return nil, err
	}
	sents := doc.Sentences()
	out := make([]string, 0, len(sents))
	for _, s := range sents {
		out = append(out, s.Text)
	}
	return out, nil
}

func (a *ProseAnnotator) Tags(sentence string) ([]PosToken, error) {
	doc, err := prose.NewDocument(sentence, prose.WithSegmentation(false), prose.WithExtraction(false))
	if err != nil {
		return nil, err
	}
	toks := doc.Tokens()
	out := make([]PosToken, 0, len(toks))
	for _, t := range toks {
		out = append(out, PosToken{Text: t.Text, Tag: t.Tag})
	}
	return out, nil
}
