// Package extractor produces raw topic-candidate strings from thread text via
// a generative model. The lexical/semantic merging happens downstream.
package extractor

import (
	"context"
	"os"
	"regexp"
	"strings"

	"google.golang.org/genai"

	"github.com/t3rryhuang/Sentiment-Insight/config"
)

// TopicExtractor is the LLM collaborator port.
type TopicExtractor interface {
	Extract(ctx context.Context, text string) ([]string, error)
}

const SYSTEM_INSTRUCTION = `
Based on the entire text below, identify all thematically relevant "abstractive" topics that best capture its core themes. Focus on deeper, context-based aspects rather than trivial or generic words (e.g., "great", "nice"). Avoid speculation beyond what the text provides. Return only the topics, separated by commas.

Example 1:
Text: "I missed the application deadline for University of Edinburgh College of Art, and I am heartbroken. My grades are excellent, but now I must wait until clearing or consider deferring my studies. The course and facilities are perfect for me."
Expected Topics: University Application, Deadline Pressure, Emotional Distress, Deferral Consideration

Example 2:
Text: "The discussion highlights how social media platforms create echo chambers by curating content that only reinforces users' existing views. This phenomenon, known as filter bubbles, intensifies polarization."
Expected Topics: Echo Chambers, Filter Bubbles, Polarization

Example 3:
Text: "The company announced a major restructuring aimed at cutting costs and increasing efficiency. While some see it as a necessary move, many employees are worried about job security and the future corporate culture."
Expected Topics: Corporate Restructuring, Cost-Cutting, Job Security, Corporate Culture

Respond with ONLY the comma-separated list of topics for the text you are given.
`

// thinkBlockPattern strips chain-of-thought blocks some models wrap their
// answer in.
var thinkBlockPattern = regexp.MustCompile(`(?s)<think>.*?</think>`)

type GeminiExtractor struct{}

func NewGeminiExtractor() *GeminiExtractor {
	return &GeminiExtractor{}
}

// Extract asks the model for the comma-separated topic list of one thread.
func (g *GeminiExtractor) Extract(ctx context.Context, text string) ([]string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: os.Getenv("GEMINI_API_KEY"),
	})
	if err != nil {
		return nil, err
	}

	result, err := client.Models.GenerateContent(
		ctx,
		config.GetConfig().GeminiModel,
		genai.Text(text),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SYSTEM_INSTRUCTION}}},
		},
	)
	if err != nil {
		return nil, err
	}

	return ParseTopicList(result.Text()), nil
}

// ParseTopicList turns the raw model output into trimmed topic candidates.
func ParseTopicList(raw string) []string {
	raw = thinkBlockPattern.ReplaceAllString(raw, "")
	var topics []string
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			topics = append(topics, t)
		}
	}
	return topics
}
