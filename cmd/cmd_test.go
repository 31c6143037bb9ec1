package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lddscreen/internal/export"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err = Execute()
	return out.String(), errOut.String(), err
}

func TestGenerateListShowExport(t *testing.T) {
	t.Setenv("LDD_CONFIG", "")
	t.Setenv("LDD_ENV", "test")

	dir := t.TempDir()
	db := filepath.Join(dir, "reports.db")
	hw := filepath.Join(dir, "handwriting.json")
	sp := filepath.Join(dir, "speech.json")
	require.NoError(t, os.WriteFile(hw, []byte(`{"overall_score": 40, "features": {"line_straightness": 20}}`), 0o644))
	require.NoError(t, os.WriteFile(sp, []byte(`{"overall_score": 60, "features": {"fluency_score": 80, "transcript": "the cat"}}`), 0o644))

	outDir := filepath.Join(dir, "out")
	stdout, stderr, err := execute(t, "generate", "--db", db,
		"--handwriting", hw, "--speech", sp,
		"--name", "Ada", "--age", "9", "--out", outDir)
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "Name: Ada")
	assert.Contains(t, stdout, "Combined Score: 48.0%")

	m := regexp.MustCompile(`Report ID: (\S+)`).FindStringSubmatch(stderr)
	require.Len(t, m, 2)
	id := m[1]

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, len(export.Formats))

	stdout, _, err = execute(t, "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, stdout, id)
	assert.Contains(t, stdout, "Ada")

	stdout, _, err = execute(t, "show", id, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Learning Disability Detection Report")

	stdout, _, err = execute(t, "export", id, "--db", db, "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, stdout, id)

	_, _, err = execute(t, "show", "LDD-missing", "--db", db)
	assert.Error(t, err)
}

func TestGenerate_BadResult(t *testing.T) {
	t.Setenv("LDD_CONFIG", "")
	t.Setenv("LDD_ENV", "test")

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"overall_score": 40}`), 0o644))

	_, _, err := execute(t, "generate", "--db", filepath.Join(dir, "r.db"), "--handwriting", bad)
	assert.Error(t, err)
}
