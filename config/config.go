// Package config loads and watches the application configuration.
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var (
	config *Config
	path   string
	once   sync.Once
	mu     sync.Mutex
	v      *viper.Viper
)

// Config represents the configuration implementation.
type Config struct {
	AppName string
	RunMode string
	Host    string
	Port    int
	Logger  *Logger
	Data    *Data
	Viper   *viper.Viper
}

// Logger holds logger configuration.
type Logger struct {
	Level      int
	Format     string
	Output     string
	OutputFile string
}

// Data holds data layer configuration.
type Data struct {
	Database *Database
	Redis    *Redis
}

// Database holds the relational store configuration.
type Database struct {
	Driver string
	Source string
}

// Redis holds the cache configuration. A blank Addr disables caching.
type Redis struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

func init() {
	flag.StringVar(&path, "conf", "", "e.g: bin ./config.yaml")
	v = viper.New()
}

// Init initializes and loads the configuration.
func Init() (cfg *Config, err error) {
	once.Do(func() {
		cfg, err = loadConfiguration()
	})
	return cfg, err
}

// GetConfig returns the configuration.
// It does not handle errors internally; instead, it returns the error for the caller to handle.
func GetConfig() (*Config, error) {
	if config == nil {
		var err error
		config, err = Init()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize config: %w", err)
		}
	}
	return config, nil
}

// loadConfiguration loads the configuration from the file and sets it globally.
func loadConfiguration() (*Config, error) {
	flag.Parse()
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	config = cfg
	return cfg, nil
}

// LoadConfig loads the configuration from the file.
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		ex, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to get executable path: %w", err)
		}
		v.SetConfigName("config")
		v.AddConfigPath("/etc/taskdesk")
		v.AddConfigPath("$HOME/.taskdesk")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Dir(ex))
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return readConfig(v), nil
}

// readConfig maps viper keys onto the typed configuration.
func readConfig(v *viper.Viper) *Config {
	return &Config{
		AppName: getStringOrDefault(v, "app_name", "taskdesk"),
		RunMode: getStringOrDefault(v, "run_mode", "release"),
		Host:    getStringOrDefault(v, "server.host", "0.0.0.0"),
		Port:    getIntOrDefault(v, "server.port", 8080),
		Logger: &Logger{
			Level:      v.GetInt("logger.level"),
			Format:     v.GetString("logger.format"),
			Output:     v.GetString("logger.output"),
			OutputFile: v.GetString("logger.output_file"),
		},
		Data: &Data{
			Database: &Database{
				Driver: getStringOrDefault(v, "data.database.driver", "postgres"),
				Source: v.GetString("data.database.source"),
			},
			Redis: &Redis{
				Addr:     v.GetString("data.redis.addr"),
				Password: v.GetString("data.redis.password"),
				DB:       v.GetInt("data.redis.db"),
				CacheTTL: getDurationOrDefault(v, "data.redis.cache_ttl", 5*time.Minute),
			},
		},
		Viper: v,
	}
}

// Reload reloads the configuration from the file.
func Reload() error {
	mu.Lock()
	defer mu.Unlock()

	newConfig, err := LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}

	config = newConfig
	return nil
}

// Watch watches the configuration file and reloads it when it changes.
func Watch(callback func(*Config)) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		if err := Reload(); err != nil {
			fmt.Printf("Error reloading config: %v\n", err)
			return
		}
		callback(config)
	})
}
