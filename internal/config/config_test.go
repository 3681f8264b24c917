package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 1.0, cfg.Sweep.Scale)
	assert.Equal(t, 3, cfg.Sweep.RunsPerCore)
	assert.Equal(t, 3, cfg.Sweep.Iterations)
	assert.Equal(t, DefaultCoreCounts, cfg.Sweep.CoreCounts)
	assert.Equal(t, DefaultQueryIDs, cfg.Sweep.QueryIDs)
	assert.Equal(t, "build-release/numaBenchmarkTPCH", cfg.Paths.Executable)
	assert.Equal(t, "results", cfg.Paths.ResultBaseDir)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sweep:
  scale: 0.1
  runs_per_core: 5
  iterations: 2
  core_counts: [8, 0, 8]
  query_ids: [6, 1]
  chunk_size_label: _chunksizeMAX
  appendix: _test
paths:
  executable: ./bench
notify:
  telegram:
    bot_token: abc
    chat_id: "42"
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	s := cfg.SweepParams()
	assert.Equal(t, 0.1, s.Scale)
	assert.Equal(t, 5, s.RunsPerCore)
	assert.Equal(t, 2, s.Iterations)
	assert.Equal(t, []int{8, 0, 8}, s.CoreCounts)
	assert.Equal(t, []int{6, 1}, s.QueryIDs)
	assert.Equal(t, "_chunksizeMAX", s.ChunkSizeLabel)
	assert.Equal(t, "_test", s.Appendix)
	assert.Equal(t, "./bench", s.Executable)
	assert.Equal(t, ".", s.WorkDir)
	assert.Equal(t, "abc", cfg.Notify.Telegram.BotToken)
	assert.Equal(t, "42", cfg.Notify.Telegram.ChatID)

	// SweepParams 返回拷贝
	s.CoreCounts[0] = 99
	assert.Equal(t, 8, cfg.Sweep.CoreCounts[0])
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sweep: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"negative iterations", func(c *Config) { c.Sweep.Iterations = -1 }},
		{"negative runs", func(c *Config) { c.Sweep.RunsPerCore = -2 }},
		{"negative scale", func(c *Config) { c.Sweep.Scale = -1 }},
		{"empty cores", func(c *Config) { c.Sweep.CoreCounts = []int{} }},
		{"negative core", func(c *Config) { c.Sweep.CoreCounts = []int{4, -1} }},
		{"negative chunk", func(c *Config) { c.Sweep.ChunkSize = -1 }},
		{"no executable", func(c *Config) { c.Paths.Executable = " " }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SWEEP_TELEGRAM_BOT_TOKEN=from-file\n"), 0o644))
	// godotenv 不覆盖已存在的变量；Setenv 负责还原，Unsetenv 让 .env 生效
	t.Setenv("SWEEP_TELEGRAM_BOT_TOKEN", "")
	os.Unsetenv("SWEEP_TELEGRAM_BOT_TOKEN")
	t.Setenv("SWEEP_TELEGRAM_CHAT_ID", "777")
	t.Setenv("SWEEP_MQTT_BROKER", "tcp://broker:1883")
	t.Setenv("SWEEP_CORE_COUNTS", "16, 4,0")
	t.Setenv("SWEEP_QUERY_IDS", "")

	cfg := Default()
	require.NoError(t, cfg.LoadEnv(envFile))

	assert.Equal(t, "from-file", cfg.Notify.Telegram.BotToken)
	assert.Equal(t, "777", cfg.Notify.Telegram.ChatID)
	assert.Equal(t, "tcp://broker:1883", cfg.Notify.MQTT.Broker)
	assert.Equal(t, []int{16, 4, 0}, cfg.Sweep.CoreCounts)
	assert.Equal(t, DefaultQueryIDs, cfg.Sweep.QueryIDs)
}

func TestLoadEnv_MissingFileIgnored(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.LoadEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestParseIntList(t *testing.T) {
	got, err := ParseIntList(" 224,196, ,0 ")
	require.NoError(t, err)
	assert.Equal(t, []int{224, 196, 0}, got)

	got, err = ParseIntList("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseIntList("1,x")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
