package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	SAP      SAPConfig      `yaml:"sap"`
	Stock    StockConfig    `yaml:"stock"`
	Auth     AuthConfig     `yaml:"auth"`
	ScanLog  ScanLogConfig  `yaml:"scanLog"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Scanner  ScannerConfig  `yaml:"scanner"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	// AllowedOrigins enables CORS for browser scanners served elsewhere.
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// SAPConfig describes how to reach the ERP OData services. An empty BaseURL
// means the backend is not configured and every lookup fails fast.
type SAPConfig struct {
	BaseURL            string `yaml:"baseUrl"`
	ProductFilterField string `yaml:"productFilterField"`
	BasicAuth          string `yaml:"basicAuth"`
	BasicAuthUser      string `yaml:"basicAuthUser"`
	BasicAuthPass      string `yaml:"basicAuthPass"`
	APIToken           string `yaml:"apiToken"`
	APIKeyHeader       string `yaml:"apiKeyHeader"`
	APIKeyValue        string `yaml:"apiKeyValue"`
}

// StockConfig holds the ledger filter that decides which line items count as
// available warehouse stock.
type StockConfig struct {
	StorageLocation string `yaml:"storageLocation"`
	StockType       string `yaml:"stockType"`
}

type AuthConfig struct {
	APIKeys []string `yaml:"apiKeys"`
}

type ScanLogConfig struct {
	Enabled bool `yaml:"enabled"`
}

type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// ScannerConfig is read by the terminal scanner, not the server.
type ScannerConfig struct {
	ServerURL   string `yaml:"serverUrl"`
	APIKey      string `yaml:"apiKey"`
	MetricsAddr string `yaml:"metricsAddr"`
}

const (
	DefaultProductFilterField = "ProductStandardID"
	DefaultStorageLocation    = "FG01"
	DefaultStockType          = "01"
)

func Load() (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_ALLOWED_ORIGINS", "")
	v.SetDefault("SAP_BASE_API_URL", "")
	v.SetDefault("SAP_PRODUCT_FILTER_FIELD", DefaultProductFilterField)
	v.SetDefault("SAP_BASIC_AUTH", "")
	v.SetDefault("SAP_BASIC_AUTH_USER", "")
	v.SetDefault("SAP_BASIC_AUTH_PASS", "")
	v.SetDefault("SAP_API_TOKEN", "")
	v.SetDefault("SAP_API_KEY_HEADER", "")
	v.SetDefault("SAP_API_KEY_VALUE", "")
	v.SetDefault("STOCK_STORAGE_LOCATION", DefaultStorageLocation)
	v.SetDefault("STOCK_TYPE", DefaultStockType)
	v.SetDefault("AUTH_API_KEYS", "")
	v.SetDefault("SCANLOG_ENABLED", false)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "stockscan")
	v.SetDefault("DB_PASSWORD", "secret")
	v.SetDefault("DB_NAME", "stockscan")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SCANNER_SERVER_URL", "http://localhost:8080")
	v.SetDefault("SCANNER_API_KEY", "")
	v.SetDefault("SCANNER_METRICS_ADDR", "")

	connMaxLifetime, err := time.ParseDuration(v.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetInt("SERVER_PORT"),
			AllowedOrigins: splitList(v.GetString("SERVER_ALLOWED_ORIGINS")),
		},
		SAP: SAPConfig{
			BaseURL:            v.GetString("SAP_BASE_API_URL"),
			ProductFilterField: v.GetString("SAP_PRODUCT_FILTER_FIELD"),
			BasicAuth:          v.GetString("SAP_BASIC_AUTH"),
			BasicAuthUser:      v.GetString("SAP_BASIC_AUTH_USER"),
			BasicAuthPass:      v.GetString("SAP_BASIC_AUTH_PASS"),
			APIToken:           v.GetString("SAP_API_TOKEN"),
			APIKeyHeader:       v.GetString("SAP_API_KEY_HEADER"),
			APIKeyValue:        v.GetString("SAP_API_KEY_VALUE"),
		},
		Stock: StockConfig{
			StorageLocation: v.GetString("STOCK_STORAGE_LOCATION"),
			StockType:       v.GetString("STOCK_TYPE"),
		},
		Auth: AuthConfig{
			APIKeys: splitList(v.GetString("AUTH_API_KEYS")),
		},
		ScanLog: ScanLogConfig{
			Enabled: v.GetBool("SCANLOG_ENABLED"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Scanner: ScannerConfig{
			ServerURL:   v.GetString("SCANNER_SERVER_URL"),
			APIKey:      v.GetString("SCANNER_API_KEY"),
			MetricsAddr: v.GetString("SCANNER_METRICS_ADDR"),
		},
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
