// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Geo       GeoConfig       `mapstructure:"geo"`
	Location  LocationConfig  `mapstructure:"location"`
	Speech    SpeechConfig    `mapstructure:"speech"`
	APIs      APIsConfig      `mapstructure:"apis"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address        string `mapstructure:"address"`
	ReadTimeout    int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout   int    `mapstructure:"write_timeout"`    // milliseconds
	SessionIdleTTL int    `mapstructure:"session_idle_ttl"` // minutes
}

type DatabaseConfig struct {
	Driver        string              `mapstructure:"driver"` // postgres | elasticsearch
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Cache         CacheConfig         `mapstructure:"cache"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
	URL       string   `mapstructure:"url"` // Single URL for backwards compatibility
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
	TTL     int  `mapstructure:"ttl"` // seconds
}

// --- Domain Configuration Sections ---

// AssistantConfig holds settings for the chat intent router.
type AssistantConfig struct {
	Currency     string `mapstructure:"currency"`
	ListLimit    int    `mapstructure:"list_limit"`
	QueryTimeout int    `mapstructure:"query_timeout"` // milliseconds
}

// GeoConfig holds the store-filter defaults.
type GeoConfig struct {
	MaxDistanceKm   float64 `mapstructure:"max_distance_km"`
	MaxTimeMinutes  float64 `mapstructure:"max_time_minutes"`
	AssumedSpeedKmh float64 `mapstructure:"assumed_speed_kmh"`
}

// LocationConfig holds settings for the external geolocation provider.
type LocationConfig struct {
	ProviderURL string `mapstructure:"provider_url"`
	Timeout     int    `mapstructure:"timeout"` // milliseconds
}

// SpeechConfig holds settings for the external transcription provider.
type SpeechConfig struct {
	ProviderURL string `mapstructure:"provider_url"`
	Locale      string `mapstructure:"locale"`
	Timeout     int    `mapstructure:"timeout"` // milliseconds
}

// APIsConfig holds settings for external API integrations.
type APIsConfig struct {
	GenAI struct {
		Enabled bool   `mapstructure:"enabled"`
		BaseURL string `mapstructure:"base_url"`
		APIKey  string `mapstructure:"api_key"`
		Model   string `mapstructure:"model"`
		Timeout int    `mapstructure:"timeout"` // milliseconds
	} `mapstructure:"genai"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
