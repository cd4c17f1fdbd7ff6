package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gdp-chart/internal/clients_api/gdp"
	"gdp-chart/internal/features/barchart"
	"gdp-chart/internal/infra/log"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var ErrInvalid = errors.New("invalid configuration")

// Config -
type Config struct {
	Source   SourceConfig   `mapstructure:"source"`
	Chart    ChartConfig    `mapstructure:"chart"`
	Output   OutputConfig   `mapstructure:"output"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	App      AppConfig      `mapstructure:"app"`
}

// SourceConfig - where the dataset comes from
type SourceConfig struct {
	URL             string  `mapstructure:"url"`
	File            string  `mapstructure:"file"`    // local copy of the document, skips HTTP
	Offline         bool    `mapstructure:"offline"` // use the last saved snapshot
	RequestTimeout  int     `mapstructure:"request_timeout"`
	MaxRetries      int     `mapstructure:"max_retries"`
	RateLimit       float64 `mapstructure:"rate_limit"`
	MaxResponseSize int64   `mapstructure:"max_response_size"`
	UserAgent       string  `mapstructure:"user_agent"`
}

type ChartConfig struct {
	Width             int    `mapstructure:"width"`
	Height            int    `mapstructure:"height"`
	Ticks             int    `mapstructure:"ticks"`
	Animated          bool   `mapstructure:"animated"`
	ColorSwitcher     bool   `mapstructure:"color_switcher"`
	Palette           string `mapstructure:"palette"`
	Title             string `mapstructure:"title"`
	YLabel            string `mapstructure:"y_label"`
	AnimationDuration int    `mapstructure:"animation_duration_ms"`
	Stagger           int    `mapstructure:"stagger_ms"`
	Validate          bool   `mapstructure:"validate"`
}

type OutputConfig struct {
	Dir      string `mapstructure:"dir"`
	SVG      bool   `mapstructure:"svg"`
	PNG      bool   `mapstructure:"png"`
	DataDir  string `mapstructure:"data_dir"`
	Snapshot bool   `mapstructure:"snapshot"` // save the fetched dataset under data_dir
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
	Caption  string `mapstructure:"caption"`
}

type AppConfig struct {
	LogDir   string `mapstructure:"log_dir"`
	LogLevel string `mapstructure:"log_level"`
	Addr     string `mapstructure:"addr"`
}

// flagKeys maps command flag names to config keys. Only flags present in the
// set passed to LoadConfig are bound.
var flagKeys = map[string]string{
	"url":            "source.url",
	"file":           "source.file",
	"offline":        "source.offline",
	"retries":        "source.max_retries",
	"timeout":        "source.request_timeout",
	"width":          "chart.width",
	"height":         "chart.height",
	"animated":       "chart.animated",
	"color-switcher": "chart.color_switcher",
	"palette":        "chart.palette",
	"validate":       "chart.validate",
	"out":            "output.dir",
	"svg":            "output.svg",
	"png":            "output.png",
	"snapshot":       "output.snapshot",
	"chat-id":        "telegram.chat_id",
	"caption":        "telegram.caption",
	"log-level":      "app.log_level",
	"addr":           "app.addr",
}

// LoadConfig from env, files and flags
// 1. by default
// 2. config.yaml (or --config)
// 3. .env file
// 4. GDPCHART_* environment and aliases
// 5. flags that were set on the command line
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	godotenv.Load(".env")

	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	if path := configFlag(flags); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.ReadInConfig() // error, if file is missing
	}

	v.SetEnvPrefix("GDPCHART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setupEnvAliases(v)

	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func configFlag(flags *pflag.FlagSet) string {
	if flags == nil {
		return ""
	}
	if f := flags.Lookup("config"); f != nil {
		return f.Value.String()
	}
	return ""
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

func setupEnvAliases(v *viper.Viper) {
	// common names without the GDPCHART_ prefix
	// TELEGRAM_BOT_TOKEN -> telegram.bot_token
	v.BindEnv("telegram.bot_token", "GDPCHART_TELEGRAM_BOT_TOKEN", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.chat_id", "GDPCHART_TELEGRAM_CHAT_ID", "TELEGRAM_CHAT_ID")
	v.BindEnv("source.url", "GDPCHART_SOURCE_URL", "GDP_DATA_URL")
	v.BindEnv("app.log_level", "GDPCHART_APP_LOG_LEVEL", "LOG_LEVEL")
	v.BindEnv("app.addr", "GDPCHART_APP_ADDR", "ADDR")
}

// setDefaults by default
func setDefaults(v *viper.Viper) {
	chart := barchart.DefaultOptions()
	source := gdp.DefaultConfig()

	// Source
	v.SetDefault("source.url", source.URL)
	v.SetDefault("source.file", "")
	v.SetDefault("source.offline", false)
	v.SetDefault("source.request_timeout", int(source.Timeout/time.Second))
	v.SetDefault("source.max_retries", 0) // one attempt, the render fails on the first error
	v.SetDefault("source.rate_limit", source.RateLimit)
	v.SetDefault("source.max_response_size", source.MaxResponseSize)
	v.SetDefault("source.user_agent", source.UserAgent)

	// Chart
	v.SetDefault("chart.width", chart.Width)
	v.SetDefault("chart.height", chart.Height)
	v.SetDefault("chart.ticks", chart.Ticks)
	v.SetDefault("chart.animated", false)
	v.SetDefault("chart.color_switcher", false)
	v.SetDefault("chart.palette", chart.Palette)
	v.SetDefault("chart.title", "")
	v.SetDefault("chart.y_label", chart.YLabel)
	v.SetDefault("chart.animation_duration_ms", chart.AnimationDuration.Milliseconds())
	v.SetDefault("chart.stagger_ms", chart.Stagger.Milliseconds())
	v.SetDefault("chart.validate", false)

	// Output
	v.SetDefault("output.dir", "public")
	v.SetDefault("output.svg", false)
	v.SetDefault("output.png", false)
	v.SetDefault("output.data_dir", "data_out")
	v.SetDefault("output.snapshot", true)

	// Telegram
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("telegram.caption", "")

	// App
	v.SetDefault("app.log_dir", "logs")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.addr", ":8080")
}

func validateConfig(cfg *Config) error {
	if cfg.Source.URL == "" && cfg.Source.File == "" {
		return fmt.Errorf("%w: source.url or source.file is required", ErrInvalid)
	}
	if cfg.Source.RequestTimeout <= 0 {
		return fmt.Errorf("%w: source.request_timeout must be positive, got %d", ErrInvalid, cfg.Source.RequestTimeout)
	}
	if cfg.Source.MaxRetries < 0 {
		return fmt.Errorf("%w: source.max_retries must not be negative, got %d", ErrInvalid, cfg.Source.MaxRetries)
	}
	if cfg.Source.RateLimit < 0 {
		return fmt.Errorf("%w: source.rate_limit must not be negative", ErrInvalid)
	}

	if cfg.Chart.Width <= 0 || cfg.Chart.Height <= 0 {
		return fmt.Errorf("%w: chart size %dx%d", ErrInvalid, cfg.Chart.Width, cfg.Chart.Height)
	}
	if cfg.Chart.Ticks <= 0 {
		return fmt.Errorf("%w: chart.ticks must be positive, got %d", ErrInvalid, cfg.Chart.Ticks)
	}
	if _, err := barchart.PaletteByName(cfg.Chart.Palette); err != nil {
		return fmt.Errorf("%w: chart.palette: %v", ErrInvalid, err)
	}

	switch strings.ToLower(cfg.App.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: app.log_level %q", ErrInvalid, cfg.App.LogLevel)
	}

	return nil
}

// RequireTelegram checks the settings the publish command needs.
func (c *Config) RequireTelegram() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("%w: telegram.bot_token is required (env: TELEGRAM_BOT_TOKEN)", ErrInvalid)
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("%w: telegram.chat_id is required (env: TELEGRAM_CHAT_ID)", ErrInvalid)
	}
	return nil
}

func (c *Config) ChartOptions() barchart.Options {
	opts := barchart.DefaultOptions()
	opts.Width = c.Chart.Width
	opts.Height = c.Chart.Height
	opts.Ticks = c.Chart.Ticks
	opts.Animated = c.Chart.Animated
	opts.ColorSwitcher = c.Chart.ColorSwitcher
	opts.Palette = c.Chart.Palette
	opts.Title = c.Chart.Title
	if c.Chart.YLabel != "" {
		opts.YLabel = c.Chart.YLabel
	}
	if c.Chart.AnimationDuration > 0 {
		opts.AnimationDuration = time.Duration(c.Chart.AnimationDuration) * time.Millisecond
	}
	if c.Chart.Stagger >= 0 {
		opts.Stagger = time.Duration(c.Chart.Stagger) * time.Millisecond
	}
	opts.Validate = c.Chart.Validate
	return opts
}

func (c *Config) ClientConfig() gdp.Config {
	return gdp.Config{
		URL:             c.Source.URL,
		Timeout:         time.Duration(c.Source.RequestTimeout) * time.Second,
		MaxRetries:      c.Source.MaxRetries,
		RateLimit:       c.Source.RateLimit,
		MaxResponseSize: c.Source.MaxResponseSize,
		UserAgent:       c.Source.UserAgent,
	}
}

func (c *Config) LogOptions() log.Options {
	return log.Options{
		Dir:     c.App.LogDir,
		Level:   strings.ToLower(c.App.LogLevel),
		Console: true,
	}
}
