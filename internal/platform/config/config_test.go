package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aquid0/Prompt-Heatmap/internal/platform/config"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	cfg, err := config.Load(config.Options{VaultPath: root, Environ: []string{}})
	require.NoError(t, err)
	assert.Equal(t, "Prompts/Prompts.md", cfg.ChecklistPath)
	assert.Equal(t, "Answers", cfg.RecordFolderPath)
	assert.Equal(t, "en-GB", cfg.DateKeyFormat)
	assert.Equal(t, "promptsAnswered", cfg.AnsweredCounterField)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, filepath.Join(root, ".prompt-heatmap", "index.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(root, ".prompt-heatmap", "run.lock"), cfg.LockPath)
	assert.Empty(t, cfg.ConfigFile)
	assert.Equal(t, "en-GB", cfg.DateKey().String())
}

func TestLoadPrecedence(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	write(t, filepath.Join(root, config.LegacyPluginData),
		`{"promptsPath": "Writing/Prompts.md", "destinationPath": "Writing/Answers/", "dateFormat": "en-US"}`)

	cfg, err := config.Load(config.Options{VaultPath: root, Environ: []string{}})
	require.NoError(t, err)
	assert.Equal(t, "Writing/Prompts.md", cfg.ChecklistPath)
	assert.Equal(t, "Writing/Answers", cfg.RecordFolderPath)
	assert.Equal(t, "en-US", cfg.DateKeyFormat)

	write(t, filepath.Join(root, config.DataDirName, "config.yaml"),
		"checklist_path: Lists/Prompts.md\ndate_key_format: iso\nlog:\n  level: info\n")
	cfg, err = config.Load(config.Options{VaultPath: root, Environ: []string{}})
	require.NoError(t, err)
	assert.Equal(t, "Lists/Prompts.md", cfg.ChecklistPath)
	assert.Equal(t, "Writing/Answers", cfg.RecordFolderPath)
	assert.Equal(t, "iso", cfg.DateKeyFormat)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, filepath.Join(root, config.DataDirName, "config.yaml"), cfg.ConfigFile)

	cfg, err = config.Load(config.Options{
		VaultPath: root,
		Environ: []string{
			"PROMPT_HEATMAP_CHECKLIST_PATH=Env/Prompts.md",
			"PROMPT_HEATMAP_LOG_LEVEL=debug",
			"PROMPT_HEATMAP_ANSWERED_COUNTER_FIELD=answered",
			"HOME=/root",
		},
		Overrides: map[string]string{"answered_counter_field": "count", "date_key_format": ""},
	})
	require.NoError(t, err)
	assert.Equal(t, "Env/Prompts.md", cfg.ChecklistPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format, "nested env keys merge into log, not replace it")
	assert.Equal(t, "count", cfg.AnsweredCounterField)
	assert.Equal(t, "iso", cfg.DateKeyFormat)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	t.Parallel()
	cases := map[string]map[string]string{
		"counter with space": {"answered_counter_field": "prompts answered"},
		"unknown date":       {"date_key_format": "not a format!"},
		"log level":          {"log.level": "loud"},
	}
	for name, overrides := range cases {
		_, err := config.Load(config.Options{VaultPath: t.TempDir(), Environ: []string{}, Overrides: overrides})
		assert.Error(t, err, name)
	}
}

func TestLoadConfigFileErrors(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	_, err := config.Load(config.Options{VaultPath: root, ConfigFile: filepath.Join(root, "missing.yaml"), Environ: []string{}})
	require.Error(t, err)

	big := filepath.Join(root, "big.yaml")
	write(t, big, "# "+strings.Repeat("x", 1024*1024)+"\n")
	_, err = config.Load(config.Options{VaultPath: root, ConfigFile: big, Environ: []string{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")

	_, err = config.Load(config.Options{Environ: []string{}})
	require.Error(t, err)
}
