package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"tpch-sweep/internal/model"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Sweep  SweepConfig  `yaml:"sweep"`
	Paths  PathsConfig  `yaml:"paths"`
	Notify NotifyConfig `yaml:"notify"`
	Server ServerConfig `yaml:"server"`
}

type SweepConfig struct {
	Scale       float64 `yaml:"scale"`
	RunsPerCore int     `yaml:"runs_per_core"`
	Iterations  int     `yaml:"iterations"`
	CoreCounts  []int   `yaml:"core_counts"`
	QueryIDs    []int   `yaml:"query_ids"`
	// 可选：chunk size 描述（如 "_chunksizeMAX"），只参与目录命名
	ChunkSizeLabel string `yaml:"chunk_size_label"`
	// 可选：>0 时传 --chunk_size
	ChunkSize int    `yaml:"chunk_size"`
	PCM       bool   `yaml:"pcm"`
	Appendix  string `yaml:"appendix"`
	// 严格模式：基准程序非0退出时终止整个 sweep（默认继续）
	HaltOnFailure bool `yaml:"halt_on_failure"`
}

type PathsConfig struct {
	Executable    string `yaml:"executable"`
	ResultBaseDir string `yaml:"result_base_dir"`
	WorkDir       string `yaml:"work_dir"`
}

type NotifyConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
}

type TelegramConfig struct {
	BaseURL  string `yaml:"base_url"`
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`
	// 秒；0 表示不设超时
	TimeoutSec int `yaml:"timeout_sec"`
}

type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	Topic    string `yaml:"topic"`
	ClientID string `yaml:"client_id"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// 与原始脚本一致的默认值
var (
	DefaultCoreCounts = []int{224, 196, 168, 140, 112, 84, 56, 28, 7, 1, 0}
	DefaultQueryIDs   = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 16, 17, 18, 19, 21, 22}
)

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig 读取 YAML 配置；文件不存在时使用默认值
func LoadConfig(path string) (*Config, error) {
	var config Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

// LoadEnv 加载 .env（可选）并用环境变量覆盖通知配置
func (c *Config) LoadEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("加载env文件失败: %w", err)
		}
	}
	if v := strings.TrimSpace(os.Getenv("SWEEP_TELEGRAM_BOT_TOKEN")); v != "" {
		c.Notify.Telegram.BotToken = v
	}
	if v := strings.TrimSpace(os.Getenv("SWEEP_TELEGRAM_CHAT_ID")); v != "" {
		c.Notify.Telegram.ChatID = v
	}
	if v := strings.TrimSpace(os.Getenv("SWEEP_MQTT_BROKER")); v != "" {
		c.Notify.MQTT.Broker = v
	}
	if v := os.Getenv("SWEEP_CORE_COUNTS"); strings.TrimSpace(v) != "" {
		counts, err := ParseIntList(v)
		if err != nil {
			return fmt.Errorf("解析 SWEEP_CORE_COUNTS 失败: %w", err)
		}
		c.Sweep.CoreCounts = counts
	}
	if v := os.Getenv("SWEEP_QUERY_IDS"); strings.TrimSpace(v) != "" {
		ids, err := ParseIntList(v)
		if err != nil {
			return fmt.Errorf("解析 SWEEP_QUERY_IDS 失败: %w", err)
		}
		c.Sweep.QueryIDs = ids
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Sweep.Scale == 0 {
		c.Sweep.Scale = 1
	}
	if c.Sweep.RunsPerCore == 0 {
		c.Sweep.RunsPerCore = 3
	}
	if c.Sweep.Iterations == 0 {
		c.Sweep.Iterations = 3
	}
	if c.Sweep.CoreCounts == nil {
		c.Sweep.CoreCounts = append([]int(nil), DefaultCoreCounts...)
	}
	if c.Sweep.QueryIDs == nil {
		c.Sweep.QueryIDs = append([]int(nil), DefaultQueryIDs...)
	}
	if c.Paths.Executable == "" {
		c.Paths.Executable = "build-release/numaBenchmarkTPCH"
	}
	if c.Paths.ResultBaseDir == "" {
		c.Paths.ResultBaseDir = "results"
	}
	if c.Paths.WorkDir == "" {
		c.Paths.WorkDir = "."
	}
	if c.Notify.Telegram.BaseURL == "" {
		c.Notify.Telegram.BaseURL = "https://api.telegram.org"
	}
	if c.Notify.MQTT.Topic == "" {
		c.Notify.MQTT.Topic = "tpch-sweep/status"
	}
	if c.Notify.MQTT.ClientID == "" {
		c.Notify.MQTT.ClientID = "tpch-sweep"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
}

func (c *Config) Validate() error {
	s := c.Sweep
	if s.Iterations < 1 {
		return fmt.Errorf("%w: iterations 必须 >= 1，当前 %d", ErrInvalidConfig, s.Iterations)
	}
	if s.RunsPerCore < 1 {
		return fmt.Errorf("%w: runs_per_core 必须 >= 1，当前 %d", ErrInvalidConfig, s.RunsPerCore)
	}
	if s.Scale <= 0 {
		return fmt.Errorf("%w: scale 必须 > 0，当前 %v", ErrInvalidConfig, s.Scale)
	}
	if len(s.CoreCounts) == 0 {
		return fmt.Errorf("%w: core_counts 不能为空", ErrInvalidConfig)
	}
	for _, cc := range s.CoreCounts {
		if cc < 0 {
			return fmt.Errorf("%w: core count 不能为负数: %d", ErrInvalidConfig, cc)
		}
	}
	if s.ChunkSize < 0 {
		return fmt.Errorf("%w: chunk_size 不能为负数: %d", ErrInvalidConfig, s.ChunkSize)
	}
	if strings.TrimSpace(c.Paths.Executable) == "" {
		return fmt.Errorf("%w: executable 不能为空", ErrInvalidConfig)
	}
	return nil
}

// SweepParams 构造不可变的 SweepConfig（切片均为拷贝）
func (c *Config) SweepParams() model.SweepConfig {
	s := c.Sweep
	return model.SweepConfig{
		Scale:          s.Scale,
		RunsPerCore:    s.RunsPerCore,
		Iterations:     s.Iterations,
		CoreCounts:     append([]int(nil), s.CoreCounts...),
		QueryIDs:       append([]int(nil), s.QueryIDs...),
		Executable:     c.Paths.Executable,
		ResultBaseDir:  c.Paths.ResultBaseDir,
		WorkDir:        c.Paths.WorkDir,
		ChunkSizeLabel: s.ChunkSizeLabel,
		ChunkSize:      s.ChunkSize,
		PCM:            s.PCM,
		Appendix:       s.Appendix,
		HaltOnFailure:  s.HaltOnFailure,
	}
}
