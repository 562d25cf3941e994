package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Mode            string        `mapstructure:"mode"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	HTTPPort        int           `mapstructure:"http_port"`
	ReadLimit       int           `mapstructure:"read_limit"`
	SendBuffer      int           `mapstructure:"send_buffer"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	PingPeriod      time.Duration `mapstructure:"ping_period"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Secret          string        `mapstructure:"secret"`
	SecureCookie    bool          `mapstructure:"secure_cookie"`
	LogLevel        string        `mapstructure:"log_level"`
}

// Load reads config/config.<CONFIG_ENV>.yaml, then CHAT_* environment
// variables, then command-line flags from args (without the program name).
func Load(args []string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("host", "")
	v.SetDefault("port", 5000)
	v.SetDefault("http_port", 8080)
	v.SetDefault("read_limit", 4096)
	v.SetDefault("send_buffer", 64)
	v.SetDefault("write_timeout", "5s")
	v.SetDefault("ping_period", "54s")
	v.SetDefault("shutdown_timeout", "5s")
	v.SetDefault("secret", "chat-dev-secret")
	v.SetDefault("secure_cookie", false)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("CHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs := pflag.NewFlagSet("server", pflag.ContinueOnError)
	fs.String("mode", "release", "gin mode: release or debug")
	fs.String("host", "", "TCP bind host")
	fs.Int("port", 5000, "TCP chat port")
	fs.Int("http-port", 8080, "admin API and WebSocket port, 0 disables it")
	fs.String("log-level", "info", "log level")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}
	for key, flag := range map[string]string{
		"mode":      "mode",
		"host":      "host",
		"port":      "port",
		"http_port": "http-port",
		"log_level": "log-level",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to read config %s: %w", fileName, err)
		}
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := validPort("port", cfg.Port); err != nil {
		return nil, err
	}
	if err := validPort("http_port", cfg.HTTPPort); err != nil {
		return nil, err
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).Int("http_port", cfg.HTTPPort).Msg("config ready")
	return &cfg, nil
}

func validPort(key string, port int) error {
	if port < 0 || port > 65535 {
		return fmt.Errorf("invalid %s %d", key, port)
	}
	return nil
}

// TCPAddr is the chat listener address.
func (c *Config) TCPAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.HTTPPort)
}
