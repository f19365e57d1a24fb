package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"db"`
	Log       LogConfig       `mapstructure:"log"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Strava    StravaConfig    `mapstructure:"strava"`
	Frontend  FrontendConfig  `mapstructure:"frontend"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Influx    InfluxConfig    `mapstructure:"influx"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// DBConfig holds the sqlite cache location
type DBConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// JWTConfig holds session token settings
type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// StravaConfig holds the OAuth application and API endpoints
type StravaConfig struct {
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	RedirectURI  string        `mapstructure:"redirect_uri"`
	APIURL       string        `mapstructure:"api_url"`
	OAuthURL     string        `mapstructure:"oauth_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// FrontendConfig holds the browser application origin
type FrontendConfig struct {
	URL string `mapstructure:"url"`
}

// RateLimitConfig holds per-IP request limits
type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// InfluxConfig holds the optional metrics sink settings
type InfluxConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	Token   string `mapstructure:"token"`
	Org     string `mapstructure:"org"`
	Bucket  string `mapstructure:"bucket"`
}

// Load 加载配置
//
// Values come from defaults, then an optional stridesense.{json,yaml} in configDir, then
// environment variables (server.port -> SERVER_PORT, strava.client_id -> STRAVA_CLIENT_ID).
func Load(configDir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configDir != "" {
		v.SetConfigName("stridesense")
		v.AddConfigPath(configDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	if !strings.HasPrefix(cfg.Server.Port, ":") {
		cfg.Server.Port = ":" + cfg.Server.Port
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", ":8000")
	v.SetDefault("server.mode", "release")

	v.SetDefault("db.path", "./data/stridesense.db")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("jwt.secret", "your-secret-key-change-in-production")
	v.SetDefault("jwt.ttl", 6*time.Hour)

	v.SetDefault("strava.client_id", "")
	v.SetDefault("strava.client_secret", "")
	v.SetDefault("strava.redirect_uri", "http://localhost:8000/callback")
	v.SetDefault("strava.api_url", "https://www.strava.com/api/v3")
	v.SetDefault("strava.oauth_url", "https://www.strava.com/oauth")
	v.SetDefault("strava.timeout", 30*time.Second)

	v.SetDefault("frontend.url", "http://localhost:3000")

	v.SetDefault("ratelimit.requests", 120)
	v.SetDefault("ratelimit.window", time.Minute)

	v.SetDefault("influx.enabled", false)
	v.SetDefault("influx.url", "http://localhost:8086")
	v.SetDefault("influx.token", "")
	v.SetDefault("influx.org", "stridesense")
	v.SetDefault("influx.bucket", "activities")
}
