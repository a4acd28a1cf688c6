package classifier_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t3rryhuang/Sentiment-Insight/classifier"
)

func TestEmotionClassifierPicksTopScore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/emotion-model", r.URL.Path)
		json.NewEncoder(w).Encode([][]map[string]any{{
			{"label": "joy", "score": 0.1},
			{"label": "anger", "score": 0.7},
			{"label": "fear", "score": 0.2},
		}})
	}))
	defer srv.Close()

	c := classifier.NewHTTPEmotionClassifier(srv.URL, "emotion-model")
	got, err := c.Classify(context.Background(), "the update broke everything")
	require.NoError(t, err)
	assert.Equal(t, "anger", got.Label)
	assert.InDelta(t, 0.7, got.Confidence, 1e-9)
}

func TestEmotionClassifierTruncatesLongInput(t *testing.T) {
	var gotInput string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Inputs string `json:"inputs"`
		}
		json.NewDecoder(r.Body).Decode(&payload)
		gotInput = payload.Inputs
		json.NewEncoder(w).Encode([][]map[string]any{{{"label": "neutral", "score": 1.0}}})
	}))
	defer srv.Close()

	long := strings.Repeat("ü", 2000)

	c := classifier.NewHTTPEmotionClassifier(srv.URL, "emotion-model")
	_, err := c.Classify(context.Background(), long)
	require.NoError(t, err)
	assert.Equal(t, 512, utf8.RuneCountInString(gotInput))
	assert.True(t, utf8.ValidString(gotInput))
}

func TestCategoryClassifierZeroShot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Inputs     string `json:"inputs"`
			Parameters struct {
				CandidateLabels []string `json:"candidate_labels"`
			} `json:"parameters"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, []string{"Technology", "Environment"}, payload.Parameters.CandidateLabels)

		json.NewEncoder(w).Encode(map[string]any{
			"labels": []string{"Technology", "Environment"},
			"scores": []float64{0.8, 0.2},
		})
	}))
	defer srv.Close()

	c := classifier.NewHTTPCategoryClassifier(srv.URL, "zero-shot-model")
	got, err := c.Classify(context.Background(), "Data Center Expansion", []string{"Technology", "Environment"})
	require.NoError(t, err)
	assert.Equal(t, "Technology", got.Label)
	assert.InDelta(t, 0.8, got.Confidence, 1e-9)
}

func TestSeverityClassifierErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := classifier.NewHTTPSeverityClassifier(srv.URL, "severity-model")
	_, err := c.Classify(context.Background(), "Layoffs")
	assert.Error(t, err)
}
