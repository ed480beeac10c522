package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"
)

// Config holds the configuration of the Smart Inclusion API.
// Values come from the environment (optionally seeded from a .env file) and from
// an optional YAML file named by INCLUSION_CONFIG_FILE. The environment wins.
type Config struct {
	Env         string       // Env is the current environment: local, development, production.
	Port        int          // Port is the public API port.
	MonitorPort int          // MonitorPort serves /healthz and /metrics.
	CORSOrigins []string     // CORSOrigins lists allowed browser origins.
	SOSRate     limiter.Rate // SOSRate throttles alert submissions per client IP.
	LogFile     string       // LogFile, when set, receives a rotated copy of the logs.
	JWT         JWTConfig
	Database    PostgresConfig
	Redis       RedisConfig
	Geocoder    GeocoderConfig
	Admin       AdminSeed
}

// JWTConfig configures admin access tokens.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// RedisConfig enables the cross-replica event relay and the shared rate limiter store.
// An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

// GeocoderConfig configures the background geocoding of places submitted with an address only.
type GeocoderConfig struct {
	Provider      string
	APIKey        string
	Workers       int
	Interval      time.Duration
	AddressSuffix string
	Region        string
	Language      string
	UserAgent     string // sent to Nominatim; empty keeps the built-in one
	RateLimit     int
}

// AdminSeed is the administrator created at startup when it does not exist yet.
type AdminSeed struct {
	Email    string
	Password string
}

var defaults = map[string]any{
	"inclusion_env":          "production",
	"inclusion_port":         "5000",
	"inclusion_monitor_port": "8080",
	"inclusion_cors_origins": "*",
	"inclusion_sos_rate":     "30-M",
	"jwt_ttl":                "168h",
	"db_port":                "5432",
	"redis_db":               "0",
	"redis_channel":          "inclusion:events",
	"geocoder_provider":      "none",
	"geocoder_workers":       "2",
	"geocoder_interval":      "1m",
	"geocoder_rate_limit":    "1",
}

var keys = []string{
	"log_file", "jwt_secret",
	"db_host", "db_username", "db_password", "db_name",
	"redis_addr", "redis_password",
	"geocoder_api_key", "geocoder_address_suffix", "geocoder_region", "geocoder_language",
	"geocoder_user_agent",
	"admin_email", "admin_password",
}

// MustLoad loads the configuration and panics when a value cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
	v.AutomaticEnv()

	if path := os.Getenv("INCLUSION_CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			panic("failed to read configuration file")
		}
	}

	secret := v.GetString("jwt_secret")
	if secret == "" {
		panic("JWT_SECRET is required")
	}

	sosRate, err := limiter.NewRateFromFormatted(v.GetString("inclusion_sos_rate"))
	if err != nil {
		panic("failed to parse sos rate from configuration")
	}

	return &Config{
		Env:         v.GetString("inclusion_env"),
		Port:        mustInt(v, "inclusion_port", "failed to parse api port from configuration"),
		MonitorPort: mustInt(v, "inclusion_monitor_port", "failed to parse port for monitoring server from configuration"),
		CORSOrigins: splitList(v.GetString("inclusion_cors_origins")),
		SOSRate:     sosRate,
		LogFile:     v.GetString("log_file"),
		JWT: JWTConfig{
			Secret: secret,
			TTL:    mustDuration(v, "jwt_ttl", "failed to parse jwt ttl from configuration"),
		},
		Database: PostgresConfig{
			Host:     v.GetString("db_host"),
			Port:     v.GetString("db_port"),
			User:     v.GetString("db_username"),
			Password: v.GetString("db_password"),
			Name:     v.GetString("db_name"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis_addr"),
			Password: v.GetString("redis_password"),
			DB:       mustInt(v, "redis_db", "failed to parse redis db from configuration"),
			Channel:  v.GetString("redis_channel"),
		},
		Geocoder: GeocoderConfig{
			Provider:      v.GetString("geocoder_provider"),
			APIKey:        v.GetString("geocoder_api_key"),
			Workers:       mustInt(v, "geocoder_workers", "failed to parse workers from configuration, must be an integer types"),
			Interval:      mustDuration(v, "geocoder_interval", "failed to parse interval from configuration"),
			AddressSuffix: v.GetString("geocoder_address_suffix"),
			Region:        v.GetString("geocoder_region"),
			Language:      v.GetString("geocoder_language"),
			UserAgent:     v.GetString("geocoder_user_agent"),
			RateLimit:     mustInt(v, "geocoder_rate_limit", "failed to parse geocoder rate limit from configuration"),
		},
		Admin: AdminSeed{
			Email:    v.GetString("admin_email"),
			Password: v.GetString("admin_password"),
		},
	}
}

func mustInt(v *viper.Viper, key, msg string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		panic(msg)
	}

	return n
}

func mustDuration(v *viper.Viper, key, msg string) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		panic(msg)
	}

	return d
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}
