// Package analyzer talks to the external handwriting and speech analysis
// services and decodes their results.
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"github.com/abhisek/lddscreen/internal/assessment"
)

// Config locates the analysis services.
type Config struct {
	HandwritingURL string        `yaml:"handwriting_url" env:"LDD_HANDWRITING_URL" env-default:"http://localhost:5001/analyze/handwriting"`
	SpeechURL      string        `yaml:"speech_url" env:"LDD_SPEECH_URL" env-default:"http://localhost:5002/analyze/speech"`
	Timeout        time.Duration `yaml:"timeout" env:"LDD_ANALYZER_TIMEOUT" env-default:"60s"`
}

// Client uploads samples to the analysis services.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a Client.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// AnalyzeHandwriting uploads a handwriting image.
func (c *Client) AnalyzeHandwriting(ctx context.Context, filename string, image io.Reader) (*assessment.ModalityResult, error) {
	return c.analyze(ctx, assessment.ModalityHandwriting, c.cfg.HandwritingURL, "image", filename, image, nil)
}

// AnalyzeSpeech uploads an audio clip, with optional reference text the
// reader was asked to read.
func (c *Client) AnalyzeSpeech(ctx context.Context, filename string, audio io.Reader, referenceText string) (*assessment.ModalityResult, error) {
	fields := map[string]string{}
	if referenceText != "" {
		fields["reference_text"] = referenceText
	}
	return c.analyze(ctx, assessment.ModalitySpeech, c.cfg.SpeechURL, "audio", filename, audio, fields)
}

func (c *Client) analyze(ctx context.Context, modality assessment.Modality, url, field, filename string, sample io.Reader, fields map[string]string) (*assessment.ModalityResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile(field, filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, sample); err != nil {
		return nil, fmt.Errorf("read %s sample: %w", modality, err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", modality, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s analysis request: %w: %w", modality, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	slog.Debug("analyzer responded",
		"modality", modality,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, serviceError(modality, resp)
	}

	res, err := Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s analysis: %w", modality, err)
	}
	return res, nil
}

func serviceError(modality assessment.Modality, resp *http.Response) error {
	se := &ServiceError{Modality: string(modality), StatusCode: resp.StatusCode}
	var payload struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(data, &payload) == nil {
		se.Message = payload.Error
	}
	return se
}
