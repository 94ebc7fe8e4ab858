package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"uapibot/pkg/logger"
)

const (
	DefaultTimeoutSeconds = 10
	DefaultConcurrency    = 10
	DefaultMaxAttempts    = 3
)

type Config struct {
	Telegram        Telegram          `yaml:"telegram"`
	Uapi            Uapi              `yaml:"uapi"`
	KeyTranslations map[string]string `yaml:"keyTranslations"`
	RateLimit       RateLimit         `yaml:"rateLimit"`
	Probe           Probe             `yaml:"probe"`
}

type Telegram struct {
	BotToken string `yaml:"botToken"`
	ChatID   int64  `yaml:"chatID"`
}

type Uapi struct {
	BaseURL       string  `yaml:"baseURL"`
	Timeout       Seconds `yaml:"timeout"`       // 单次查询超时（秒）
	MaxConcurrent int     `yaml:"maxConcurrent"` // 并发闸门容量
	MaxAttempts   int     `yaml:"maxAttempts"`   // 超时重试上限
	WhoisFallback bool    `yaml:"whoisFallback"` // 上游失败时是否直查注册局
}

type RateLimit struct {
	PerMinute int `yaml:"perMinute"`
	Burst     int `yaml:"burst"`
}

// Probe 每日可用性探测，默认关闭。
type Probe struct {
	Enabled bool   `yaml:"enabled"`
	Hour    int    `yaml:"hour"`
	Minute  int    `yaml:"minute"`
	Host    string `yaml:"host"`
}

// Seconds 是以秒计的时长配置。
// 配置里写了非数字时不中断加载，先记为 0，由 Normalize 换成默认值。
type Seconds float64

func (s *Seconds) UnmarshalYAML(value *yaml.Node) error {
	v, err := strconv.ParseFloat(value.Value, 64)
	if err != nil {
		logger.Module("Config").Warnf("timeout 配置无效 (%q)，将使用默认值 %d 秒", value.Value, DefaultTimeoutSeconds)
		*s = 0
		return nil
	}
	*s = Seconds(v)
	return nil
}

// Load 读取 YAML 配置并应用默认值。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	cfg.Normalize()
	return &cfg, nil
}

// Normalize 把非法或缺省的配置项替换为默认值。
func (c *Config) Normalize() {
	log := logger.Module("Config")

	if c.Telegram.BotToken == "" {
		c.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	}
	if c.Uapi.Timeout <= 0 {
		if c.Uapi.Timeout < 0 {
			log.Warnf("timeout 配置无效 (%v)，将使用默认值 %d 秒", c.Uapi.Timeout, DefaultTimeoutSeconds)
		}
		c.Uapi.Timeout = DefaultTimeoutSeconds
	}
	if c.Uapi.MaxConcurrent <= 0 {
		c.Uapi.MaxConcurrent = DefaultConcurrency
	}
	if c.Uapi.MaxAttempts <= 0 {
		c.Uapi.MaxAttempts = DefaultMaxAttempts
	}
	if c.RateLimit.PerMinute <= 0 {
		c.RateLimit.PerMinute = 20
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = 5
	}
	if c.Probe.Host == "" {
		c.Probe.Host = "uapis.cn"
	}
}
