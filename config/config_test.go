package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"KEY_COLUMN", "PARSE_MODE", "STORE_HAS_GROUPING", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Player", cfg.KeyColumn)
	assert.Equal(t, "Player Name", cfg.NameColumn)
	assert.Equal(t, "lenient", cfg.ParseMode)
	assert.False(t, cfg.StrictParse())
	assert.True(t, cfg.StoreHasGrouping)
	assert.Equal(t, "INFO", cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PARSE_MODE", "STRICT")
	t.Setenv("STORE_HAS_GROUPING", "false")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("POSTGRES_HOST", "db.internal")

	cfg := Load()
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.StrictParse())
	assert.False(t, cfg.StoreHasGrouping)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Contains(t, cfg.DSN(), "host=db.internal")
}

func TestValidateRejectsUnknownParseMode(t *testing.T) {
	cfg := Load()
	cfg.ParseMode = "sloppy"
	assert.Error(t, cfg.Validate())
}

func TestLoadRulesDefaults(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), rules)
}

func TestLoadRulesOverridesOnlyGivenFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := "branch_markers: [CABANG, KCP]\nhead_office: HEAD OFFICE\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"CABANG", "KCP"}, rules.BranchMarkers)
	assert.Equal(t, "HEAD OFFICE", rules.HeadOffice)
	assert.Equal(t, []string{"-"}, rules.Separators)
	assert.Equal(t, "Branch", rules.Branch)
	assert.Equal(t, "Others", rules.OthersLabel)
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
