package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lddscreen/internal/assessment"
)

func TestDecode(t *testing.T) {
	res, err := Decode(strings.NewReader(`{"overall_score": 72.5, "features": {"line_straightness": 61, "transcript": "hi"}}`))
	require.NoError(t, err)
	assert.Equal(t, 72.5, res.OverallScore)
	v, ok := res.Features.Number(assessment.FeatureLineStraightness)
	require.True(t, ok)
	assert.Equal(t, 61.0, v)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{"overall_score":`},
		{"missing features", `{"overall_score": 50}`},
		{"missing score", `{"features": {}}`},
		{"score out of range", `{"overall_score": 101, "features": {}}`},
		{"negative score", `{"overall_score": -1, "features": {}}`},
		{"features not object", `{"overall_score": 50, "features": [1, 2]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.body))
			var invalid *ErrInvalidResult
			assert.True(t, errors.As(err, &invalid), "got %v", err)
		})
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{
		HandwritingURL: server.URL + "/analyze/handwriting",
		SpeechURL:      server.URL + "/analyze/speech",
		Timeout:        5 * time.Second,
	})
}

func TestAnalyzeHandwriting(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze/handwriting", r.URL.Path)
		file, header, err := r.FormFile("image")
		if !assert.NoError(t, err) {
			return
		}
		data, _ := io.ReadAll(file)
		assert.Equal(t, "sample.png", header.Filename)
		assert.Equal(t, "png-bytes", string(data))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"overall_score": 81.0,
			"features":      map[string]any{"contour_count": 40},
		})
	})

	res, err := c.AnalyzeHandwriting(context.Background(), "/tmp/sample.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, 81.0, res.OverallScore)
}

func TestAnalyzeSpeech_ReferenceText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze/speech", r.URL.Path)
		_, _, err := r.FormFile("audio")
		assert.NoError(t, err)
		assert.Equal(t, "The cat sat.", r.FormValue("reference_text"))
		w.Write([]byte(`{"overall_score": 64, "features": {"word_count": 3, "transcript": "the cat sat"}}`))
	})

	res, err := c.AnalyzeSpeech(context.Background(), "clip.webm", strings.NewReader("audio"), "The cat sat.")
	require.NoError(t, err)
	assert.Equal(t, "the cat sat", res.Features.Text(assessment.FeatureTranscript))
}

func TestAnalyzeSpeech_NoReferenceText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		_, ok := r.MultipartForm.Value["reference_text"]
		assert.False(t, ok)
		w.Write([]byte(`{"overall_score": 64, "features": {}}`))
	})

	_, err := c.AnalyzeSpeech(context.Background(), "clip.wav", strings.NewReader("audio"), "")
	require.NoError(t, err)
}

func TestAnalyze_ServiceError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error": "no handwriting detected"}`))
	})

	_, err := c.AnalyzeHandwriting(context.Background(), "blank.png", strings.NewReader(""))
	var se *ServiceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnprocessableEntity, se.StatusCode)
	assert.Equal(t, "no handwriting detected", se.Message)
	assert.Contains(t, se.Error(), "handwriting analysis failed")
}

func TestAnalyze_InvalidBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"overall_score": "high"}`))
	})

	_, err := c.AnalyzeHandwriting(context.Background(), "a.png", strings.NewReader("x"))
	var invalid *ErrInvalidResult
	assert.True(t, errors.As(err, &invalid))
}

func TestAnalyze_Unreachable(t *testing.T) {
	c := NewClient(Config{HandwritingURL: "http://127.0.0.1:1/analyze", Timeout: time.Second})
	_, err := c.AnalyzeHandwriting(context.Background(), "a.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnavailable)
}
