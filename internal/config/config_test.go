package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	m, err := NewManager("")
	require.NoError(t, err)
	cfg, err := m.Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 2017, cfg.Papers.Year)
	assert.Contains(t, cfg.Papers.Categories, "cs.LG")
	assert.Equal(t, []string{"ref", "autoref", "cref"}, cfg.Tables.RefCommands)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
papers:
  year: 2020
  categories: [cs.AI]
tables:
  input_dir: /data/tex
refonce:
  from_year: 2019
  to_year: 2021
`), 0o644))

	m, err := NewManager(path)
	require.NoError(t, err)
	assert.Equal(t, path, m.ConfigFile())

	cfg, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, 2020, cfg.Papers.Year)
	assert.Equal(t, []string{"cs.AI"}, cfg.Papers.Categories)
	assert.Equal(t, "/data/tex", cfg.Tables.InputDir)
	assert.Equal(t, 2019, cfg.RefOnce.FromYear)
	assert.Equal(t, "*.tex", cfg.Tables.Pattern)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("ARXIVTEX_PAPERS_YEAR", "2019")
	t.Setenv("ARXIVTEX_INDEX_PATH", "/tmp/other.db")

	m, err := NewManager("")
	require.NoError(t, err)
	cfg, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, 2019, cfg.Papers.Year)
	assert.Equal(t, "/tmp/other.db", cfg.Index.Path)
}

func TestBindFlag(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("year", 0, "")
	require.NoError(t, fs.Parse([]string{"--year", "2022"}))

	m, err := NewManager("")
	require.NoError(t, err)
	require.NoError(t, m.BindFlag("papers.year", fs.Lookup("year")))
	assert.Error(t, m.BindFlag("papers.output", fs.Lookup("missing")))

	cfg, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, 2022, cfg.Papers.Year)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.RefOnce.FromYear = 2024
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Tables.OutputName = ""
	assert.Error(t, cfg.Validate())
}

func TestPaths(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join("sample_table_paragraphs_output", "sample_table_paragraphs_2018.json"), cfg.Tables.OutputPath())
	assert.Equal(t, filepath.Join("sample_table_paragraphs_logs", "process_sample_table_paragraphs_2018.log"), cfg.Tables.LogPath())
	assert.Equal(t, filepath.Join("json_files_after_filter", "referenced_once_tables_{year}.json"), cfg.RefOnce.OutputTemplatePath())
	assert.Equal(t, filepath.Join("json_files_after_filter", "referenced_once_tables_combined.json"), cfg.RefOnce.CombinedPath())
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arxivtex.yaml")
	require.NoError(t, WriteDefault(path))

	m, err := NewManager(path)
	require.NoError(t, err)
	cfg, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
