package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lddscreen/internal/assessment"
	"github.com/abhisek/lddscreen/internal/customrules"
)

// unsetEnv removes variables for the duration of the test.
func unsetEnv(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		if prev, ok := os.LookupEnv(name); ok {
			t.Cleanup(func() { os.Setenv(name, prev) })
		} else {
			t.Cleanup(func() { os.Unsetenv(name) })
		}
		require.NoError(t, os.Unsetenv(name))
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, PathEnv, "LDD_ENV", "LDD_DB", "LDD_LLM_PROVIDER", "LDD_HTTP_ADDRESS", "LDD_REPORT_ID_SCHEME")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "clock", cfg.Report.IDScheme)
	assert.Equal(t, "http://localhost:5001/analyze/handwriting", cfg.Analyzer.HandwritingURL)
	assert.Equal(t, "http://localhost:5002/analyze/speech", cfg.Analyzer.SpeechURL)
	assert.Equal(t, 60*time.Second, cfg.Analyzer.Timeout)
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTPServer.Address)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, 512, cfg.Narrative.MaxTokens)
	assert.Empty(t, cfg.CustomRules)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ldd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: production
db_path: /tmp/reports.db
report:
  id_scheme: uuid
analyzer:
  speech_url: http://speech.internal/analyze/speech
llm:
  provider: mock
custom_rules:
  - modality: handwriting
    kind: strength
    when: "features.word_spacing > 60.0"
    message: Even word spacing
`), 0o644))

	unsetEnv(t, PathEnv, "LDD_ENV", "LDD_DB", "LDD_LLM_PROVIDER", "LDD_REPORT_ID_SCHEME", "LDD_SPEECH_URL")
	t.Setenv("LDD_HTTP_ADDRESS", "0.0.0.0:9000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "/tmp/reports.db", cfg.DBPath)
	assert.Equal(t, "uuid", cfg.Report.IDScheme)
	assert.Equal(t, "http://speech.internal/analyze/speech", cfg.Analyzer.SpeechURL)
	assert.Equal(t, "http://localhost:5001/analyze/handwriting", cfg.Analyzer.HandwritingURL)
	assert.Equal(t, "0.0.0.0:9000", cfg.HTTPServer.Address)
	assert.Equal(t, "mock", cfg.LLM.Provider)
	require.Len(t, cfg.CustomRules, 1)
	assert.Equal(t, customrules.Definition{
		Modality: assessment.ModalityHandwriting,
		Kind:     customrules.KindStrength,
		When:     "features.word_spacing > 60.0",
		Message:  "Even word spacing",
	}, cfg.CustomRules[0])
}

func TestLoad_PathFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ldd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("env: development\n"), 0o644))
	t.Setenv(PathEnv, path)
	unsetEnv(t, "LDD_ENV")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
}

func TestLoad_EmptyVariablesAreUnset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ldd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("env: production\nllm:\n  provider: mock\n"), 0o644))
	t.Setenv("LDD_ENV", "")
	t.Setenv("LDD_LLM_PROVIDER", "")
	t.Setenv("LDD_REPORT_ID_SCHEME", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "mock", cfg.LLM.Provider)
	assert.Equal(t, "clock", cfg.Report.IDScheme)

	t.Setenv(PathEnv, "")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
