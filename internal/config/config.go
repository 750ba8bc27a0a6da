package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Dashboard DashboardConfig `yaml:"dashboard" envconfig:"DASHBOARD"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format      string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output      string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// PathsConfig contains file system paths configuration.
// Relative paths are resolved against the executable directory.
type PathsConfig struct {
	ExecutableDir string `yaml:"executable_dir" envconfig:"EXECUTABLE_DIR"`
	DataDir       string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	WebDir        string `yaml:"web_dir" envconfig:"WEB_DIR" default:"web"`
	LogsDir       string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
	SalesFile     string `yaml:"sales_file" envconfig:"SALES_FILE" default:"cleaned_sales_data.csv"`
	CustomerFile  string `yaml:"customer_file" envconfig:"CUSTOMER_FILE" default:"customer_rfm_data.csv"`
}

// DashboardConfig controls dashboard computation limits
type DashboardConfig struct {
	TopProducts int `yaml:"top_products" envconfig:"TOP_PRODUCTS" default:"10"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("SALESPULSE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	// Resolve relative paths
	if err := cfg.resolvePaths(); err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs overlays file values onto the env-derived config. A file
// value wins over a built-in default but never over an explicitly set
// environment variable.
func mergeConfigs(fileConfig, envConfig Config) Config {
	fileWins := func(envVar string) bool {
		_, set := os.LookupEnv(envVar)
		return !set
	}

	if fileConfig.Server.Port != 0 && fileWins("SALESPULSE_SERVER_PORT") {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if fileConfig.Server.ReadTimeout != 0 && fileWins("SALESPULSE_SERVER_READ_TIMEOUT") {
		envConfig.Server.ReadTimeout = fileConfig.Server.ReadTimeout
	}
	if fileConfig.Server.WriteTimeout != 0 && fileWins("SALESPULSE_SERVER_WRITE_TIMEOUT") {
		envConfig.Server.WriteTimeout = fileConfig.Server.WriteTimeout
	}
	if fileConfig.Logging.Level != "" && fileWins("SALESPULSE_LOGGING_LEVEL") {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if fileConfig.Logging.Format != "" && fileWins("SALESPULSE_LOGGING_FORMAT") {
		envConfig.Logging.Format = fileConfig.Logging.Format
	}
	if fileConfig.Paths.DataDir != "" && fileWins("SALESPULSE_PATHS_DATA_DIR") {
		envConfig.Paths.DataDir = fileConfig.Paths.DataDir
	}
	if fileConfig.Paths.SalesFile != "" && fileWins("SALESPULSE_PATHS_SALES_FILE") {
		envConfig.Paths.SalesFile = fileConfig.Paths.SalesFile
	}
	if fileConfig.Paths.CustomerFile != "" && fileWins("SALESPULSE_PATHS_CUSTOMER_FILE") {
		envConfig.Paths.CustomerFile = fileConfig.Paths.CustomerFile
	}

	return envConfig
}

// resolvePaths fills in the executable directory so relative
// configuration paths resolve consistently regardless of cwd.
func (c *Config) resolvePaths() error {
	if c.Paths.ExecutableDir != "" {
		return nil
	}
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}
	c.Paths.ExecutableDir = filepath.Dir(exe)
	return nil
}

// validate checks configuration invariants
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	if c.Security.RateLimit.Enabled && c.Security.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate limit rps must be positive, got %f", c.Security.RateLimit.RPS)
	}

	if c.Dashboard.TopProducts < 1 {
		return fmt.Errorf("dashboard top_products must be at least 1, got %d", c.Dashboard.TopProducts)
	}

	return nil
}

// getConfigFilePath returns the config file location, overridable via env
func getConfigFilePath() string {
	if path := os.Getenv("SALESPULSE_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

// resolve joins a possibly relative path against the executable directory
func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Paths.ExecutableDir, path)
}

// GetDataDir returns the resolved data directory path
func (c *Config) GetDataDir() string {
	return c.resolve(c.Paths.DataDir)
}

// GetWebDir returns the resolved web directory path
func (c *Config) GetWebDir() string {
	return c.resolve(c.Paths.WebDir)
}

// GetLogsDir returns the resolved logs directory path
func (c *Config) GetLogsDir() string {
	return c.resolve(c.Paths.LogsDir)
}

// GetSalesFile returns the resolved cleaned sales data file path
func (c *Config) GetSalesFile() string {
	if filepath.IsAbs(c.Paths.SalesFile) {
		return c.Paths.SalesFile
	}
	return filepath.Join(c.GetDataDir(), c.Paths.SalesFile)
}

// GetCustomerFile returns the resolved customer RFM data file path
func (c *Config) GetCustomerFile() string {
	if filepath.IsAbs(c.Paths.CustomerFile) {
		return c.Paths.CustomerFile
	}
	return filepath.Join(c.GetDataDir(), c.Paths.CustomerFile)
}

// EnsureDirectories creates required directories if missing
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.GetDataDir(), c.GetLogsDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// FileExists checks if a file exists at the given path
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
