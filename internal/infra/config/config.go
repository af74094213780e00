package config

// Configuration loading with layered precedence:
// defaults, config.yaml, .env file, environment, command-line flags

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Source   SourceConfig   `mapstructure:"source"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	App      AppConfig      `mapstructure:"app"`
}

// SourceConfig - distribution API settings
type SourceConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TokenID        string `mapstructure:"token_id"`        // token whose holder distribution is monitored
	RequestTimeout int    `mapstructure:"request_timeout"` // seconds
	MaxRetries     int    `mapstructure:"max_retries"`
	SnapshotLimit  int    `mapstructure:"snapshot_limit"` // snapshots requested per fetch, newest first
}

type TelegramConfig struct {
	BotToken    string `mapstructure:"bot_token"`
	ChatID      string `mapstructure:"chat_id"`
	AttachChart bool   `mapstructure:"attach_chart"` // attach distribution PNG to reports
}

type AppConfig struct {
	DataDir         string `mapstructure:"data_dir"`
	RefreshInterval int    `mapstructure:"refresh_interval"` // seconds between watch cycles
	MaxResponseSize int64  `mapstructure:"max_response_size"`
}

// LoadConfig merges, from lowest to highest precedence:
// defaults, config.yaml, .env, environment variables, flags.
func LoadConfig() (*Config, error) {
	godotenv.Load(".env")

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.ReadInConfig() // missing config.yaml is fine

	v.SetConfigType("env")
	v.SetConfigFile(".env")
	v.ReadInConfig() // missing .env is fine

	v.AutomaticEnv()
	setupEnvAliases(v)
	setupFlags(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setupEnvAliases(v *viper.Viper) {
	v.BindEnv("source.base_url", "TIERWATCH_SOURCE_BASE_URL")
	v.BindEnv("source.token_id", "TIERWATCH_TOKEN_ID")
	v.BindEnv("source.request_timeout", "TIERWATCH_REQUEST_TIMEOUT")
	v.BindEnv("source.max_retries", "TIERWATCH_MAX_RETRIES")
	v.BindEnv("source.snapshot_limit", "TIERWATCH_SNAPSHOT_LIMIT")

	v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID")
	v.BindEnv("telegram.attach_chart", "TELEGRAM_ATTACH_CHART")

	v.BindEnv("app.data_dir", "TIERWATCH_DATA_DIR")
	v.BindEnv("app.refresh_interval", "TIERWATCH_REFRESH_INTERVAL")
	v.BindEnv("app.max_response_size", "TIERWATCH_MAX_RESPONSE_SIZE")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source.base_url", "https://api.luminex.io/spark")
	v.SetDefault("source.token_id", "")
	v.SetDefault("source.request_timeout", 30)
	v.SetDefault("source.max_retries", 3)
	v.SetDefault("source.snapshot_limit", 2)

	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("telegram.attach_chart", true)

	v.SetDefault("app.data_dir", "data_out")
	v.SetDefault("app.refresh_interval", 300)
	v.SetDefault("app.max_response_size", 10*1024*1024) // 10MB
}

func setupFlags(v *viper.Viper) {
	pflag.String("source.base_url", "https://api.luminex.io/spark", "Distribution API base URL (env: TIERWATCH_SOURCE_BASE_URL)")
	pflag.String("source.token_id", "", "Token identifier to monitor (env: TIERWATCH_TOKEN_ID)")
	pflag.Int("source.request_timeout", 30, "Request timeout in seconds (env: TIERWATCH_REQUEST_TIMEOUT)")
	pflag.Int("source.max_retries", 3, "Max retries for failed requests (env: TIERWATCH_MAX_RETRIES)")
	pflag.Int("source.snapshot_limit", 2, "Snapshots requested per fetch (env: TIERWATCH_SNAPSHOT_LIMIT)")

	pflag.String("telegram.bot_token", "", "Telegram bot token (env: TELEGRAM_BOT_TOKEN)")
	pflag.String("telegram.chat_id", "", "Telegram chat ID for reports (env: TELEGRAM_CHAT_ID)")
	pflag.Bool("telegram.attach_chart", true, "Attach distribution chart PNG to reports (env: TELEGRAM_ATTACH_CHART)")

	pflag.String("app.data_dir", "data_out", "Data directory for snapshot history (env: TIERWATCH_DATA_DIR)")
	pflag.Int("app.refresh_interval", 300, "Seconds between watch cycles (env: TIERWATCH_REFRESH_INTERVAL)")
	pflag.Int64("app.max_response_size", 10*1024*1024, "Max response size in bytes (env: TIERWATCH_MAX_RESPONSE_SIZE)")

	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)
}

func validateConfig(cfg *Config) error {
	if cfg.Source.TokenID == "" {
		return fmt.Errorf("source.token_id is required (flag --source.token_id or env TIERWATCH_TOKEN_ID)")
	}
	if cfg.Source.SnapshotLimit < 1 {
		return fmt.Errorf("source.snapshot_limit must be at least 1, got %d", cfg.Source.SnapshotLimit)
	}
	// Telegram is optional, but token and chat come as a pair.
	if (cfg.Telegram.BotToken == "") != (cfg.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}
