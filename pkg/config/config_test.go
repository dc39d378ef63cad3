package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jqs7/regex/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("REGEX_GROUP_ID", "-1001")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("PER_PAGE", "")
	t.Setenv("REGISTRY_PATH", "")
	t.Setenv("TEST_GROUP_ID", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(-1001), cfg.RegexGroupID)
	assert.Equal(t, int64(-1001), cfg.TestGroupID)
	assert.Equal(t, 10*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 30, cfg.PerPage)
	assert.Equal(t, model.AllWordTypes(), cfg.Types)

	t.Run("缺少管理群", func(t *testing.T) {
		t.Setenv("REGEX_GROUP_ID", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("页长有误", func(t *testing.T) {
		t.Setenv("PER_PAGE", "0")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
types: [nm, ad, bio]
receivers:
  ad: [CLEAN, NOSPAM]
  nm: [NOSPAM]
`), 0o600))

	t.Setenv("REGEX_GROUP_ID", "1")
	t.Setenv("REGISTRY_PATH", path)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []model.WordType{model.TypeAd, model.TypeBio, model.TypeNm}, cfg.Types)
	assert.Equal(t, []string{"CLEAN", "NOSPAM"}, cfg.Receivers[model.TypeAd])
	assert.True(t, cfg.Enabled(model.TypeBio))
	assert.False(t, cfg.Enabled(model.TypeWb))

	t.Run("未知类别", func(t *testing.T) {
		c := &Config{Receivers: map[model.WordType][]string{}}
		assert.Error(t, c.Apply(&Registry{Types: []model.WordType{"xyz"}}))
	})

	t.Run("接收者类别未启用", func(t *testing.T) {
		c := &Config{Types: []model.WordType{model.TypeAd}, Receivers: map[model.WordType][]string{}}
		assert.Error(t, c.Apply(&Registry{Receivers: map[model.WordType][]string{model.TypeNm: {"USER"}}}))
	})
}
