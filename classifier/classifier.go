// Package classifier holds the pretrained-model collaborator ports used during
// extraction and severity scoring. Each concern gets its own named port with
// one concrete adapter; no runtime dispatch on model-name strings.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Classification is a predicted label with the model's confidence in it.
type Classification struct {
	Label      string
	Confidence float64
}

// EmotionClassifier predicts the dominant emotion of a text.
type EmotionClassifier interface {
	Classify(ctx context.Context, text string) (Classification, error)
}

// CategoryClassifier assigns one of the candidate labels to a text
// (zero-shot classification).
type CategoryClassifier interface {
	Classify(ctx context.Context, text string, candidateLabels []string) (Classification, error)
}

// SeverityClassifier predicts a severity class label (LABEL_0..LABEL_9) for a
// topic text.
type SeverityClassifier interface {
	Classify(ctx context.Context, text string) (Classification, error)
}

// inferenceClient posts to a HuggingFace-style inference server.
type inferenceClient struct {
	endpoint string
	client   *http.Client
}

func newInferenceClient(endpoint string) inferenceClient {
	return inferenceClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (c inferenceClient) post(ctx context.Context, model string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint+"/models/"+model, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("inference error %d: %s", resp.StatusCode, string(bodyBytes))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// scoredLabel matches the text-classification response rows.
type scoredLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// textClassify runs plain text classification and returns the top label.
func (c inferenceClient) textClassify(ctx context.Context, model, text string) (Classification, error) {
	payload := map[string]any{"inputs": text}

	var result [][]scoredLabel
	if err := c.post(ctx, model, payload, &result); err != nil {
		return Classification{}, err
	}
	if len(result) == 0 || len(result[0]) == 0 {
		return Classification{}, fmt.Errorf("empty classification result")
	}

	best := result[0][0]
	for _, row := range result[0][1:] {
		if row.Score > best.Score {
			best = row
		}
	}
	return Classification{Label: best.Label, Confidence: best.Score}, nil
}

// HTTPEmotionClassifier classifies emotions through the inference server.
type HTTPEmotionClassifier struct {
	inferenceClient
	model string
}

func NewHTTPEmotionClassifier(endpoint, model string) *HTTPEmotionClassifier {
	return &HTTPEmotionClassifier{inferenceClient: newInferenceClient(endpoint), model: model}
}

func (c *HTTPEmotionClassifier) Classify(ctx context.Context, text string) (Classification, error) {
	// Emotion models cap input length; classify the head of the thread.
	// Truncation is by rune so a multi-byte character is never split.
	if runes := []rune(text); len(runes) > 512 {
		text = string(runes[:512])
	}
	return c.textClassify(ctx, c.model, text)
}

// HTTPSeverityClassifier scores topic texts through the fine-tuned severity
// model on the inference server.
type HTTPSeverityClassifier struct {
	inferenceClient
	model string
}

func NewHTTPSeverityClassifier(endpoint, model string) *HTTPSeverityClassifier {
	return &HTTPSeverityClassifier{inferenceClient: newInferenceClient(endpoint), model: model}
}

func (c *HTTPSeverityClassifier) Classify(ctx context.Context, text string) (Classification, error) {
	return c.textClassify(ctx, c.model, text)
}

// HTTPCategoryClassifier runs zero-shot classification against the candidate
// category labels.
type HTTPCategoryClassifier struct {
	inferenceClient
	model string
}

func NewHTTPCategoryClassifier(endpoint, model string) *HTTPCategoryClassifier {
	return &HTTPCategoryClassifier{inferenceClient: newInferenceClient(endpoint), model: model}
}

func (c *HTTPCategoryClassifier) Classify(ctx context.Context, text string, candidateLabels []string) (Classification, error) {
	payload := map[string]any{
		"inputs": text,
		"parameters": map[string]any{
			"candidate_labels": candidateLabels,
		},
	}

	var result struct {
		Labels []string  `json:"labels"`
		Scores []float64 `json:"scores"`
	}
	if err := c.post(ctx, c.model, payload, &result); err != nil {
		return Classification{}, err
	}
	if len(result.Labels) == 0 || len(result.Labels) != len(result.Scores) {
		return Classification{}, fmt.Errorf("malformed zero-shot result")
	}

	// Labels come back sorted by score descending.
	return Classification{Label: result.Labels[0], Confidence: result.Scores[0]}, nil
}
