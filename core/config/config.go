package config

import (
	"fmt"
	"strings"
	"sync"

	"studio-api/core/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret         string `mapstructure:"secret"`
	AccessTTLMin   int    `mapstructure:"access_ttl_minutes"`
	RefreshTTLHour int    `mapstructure:"refresh_ttl_hours"`
}

// BookingConfig carries the defaults used when a host configures a day
// without an explicit window. Timezone is a fallback only; each host
// may configure their own IANA zone.
type BookingConfig struct {
	DefaultTimezone string `mapstructure:"default_timezone"`
	FromHour        string `mapstructure:"from_hour"`
	ToHour          string `mapstructure:"to_hour"`
	DurationMinutes int    `mapstructure:"duration_minutes"`
	BreakMinutes    int    `mapstructure:"break_minutes"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Booking  BookingConfig  `mapstructure:"booking"`
}

var (
	instance *Config
	mu       sync.RWMutex
)

// Load reads .env (if present), binds environment variables and builds
// the process-wide config singleton.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info("config: no .env file, using environment only")
	}

	v := viper.New()
	v.SetEnvPrefix("STUDIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required (STUDIO_JWT_SECRET)")
	}

	mu.Lock()
	instance = &cfg
	mu.Unlock()

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "studio")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.access_ttl_minutes", 30)
	v.SetDefault("jwt.refresh_ttl_hours", 168)

	v.SetDefault("booking.default_timezone", "Asia/Ho_Chi_Minh")
	v.SetDefault("booking.from_hour", "09:00")
	v.SetDefault("booking.to_hour", "18:00")
	v.SetDefault("booking.duration_minutes", 60)
	v.SetDefault("booking.break_minutes", 0)
}

// Get returns the loaded config; panics when called before Load.
func Get() *Config {
	cfg, ok := GetSafe()
	if !ok {
		panic("config.Get called before config.Load")
	}
	return cfg
}

// GetSafe returns the loaded config and whether Load has run.
func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}
