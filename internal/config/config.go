package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis"    validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all HTTP-server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// RedisConfig contains the settings for the task cache.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"required"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"   validate:"gte=0"`

	// TaskTTLHours is the time-to-live applied to every cached task
	// snapshot. Entries older than this are treated as absent.
	TaskTTLHours int `mapstructure:"task_ttl_hours" validate:"required,gt=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	// JWTSecret is the symmetric key used to sign and verify both
	// access and refresh tokens. Must be at least 32 bytes.
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// AccessTokenLifetimeMinutes controls how long issued access tokens
	// remain valid.
	AccessTokenLifetimeMinutes int `mapstructure:"access_token_lifetime_minutes" validate:"required,gt=0"`

	// RefreshTokenLifetimeMinutes controls how long issued refresh tokens
	// remain valid. Should be substantially longer than the access lifetime.
	RefreshTokenLifetimeMinutes int `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
}
