package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"
)

type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Store      StoreConfig      `mapstructure:"store"`
	Server     ServerConfig     `mapstructure:"server"`
	Templates  TemplatesConfig  `mapstructure:"templates"`
	Outputs    OutputsConfig    `mapstructure:"outputs"`
}

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=sqlite3 mysql"`
	Path            string            `mapstructure:"path" validate:"required_if=Driver sqlite3"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
	ConnectAttempts uint              `mapstructure:"connect_attempts" validate:"gte=1"`
}

type DictionaryConfig struct {
	BaseURL        string        `mapstructure:"base_url" validate:"url"`
	Timeout        time.Duration `mapstructure:"timeout" validate:"gt=0"`
	CacheDirectory string        `mapstructure:"cache_directory"`
	// RequestsPerSecond throttles lookups sent to the API. Zero disables it.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gte=0"`
}

type StoreConfig struct {
	// CoalesceWindow is how long repositories wait for further change
	// notifications before refetching.
	CoalesceWindow time.Duration `mapstructure:"coalesce_window" validate:"gt=0"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"gt=0,lte=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type TemplatesConfig struct {
	WordListTemplate string `mapstructure:"word_list_template" validate:"omitempty,file"`
}

type OutputsConfig struct {
	Directory string `mapstructure:"directory"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/wordbook")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", filepath.Join("data", "wordbook.db"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "wordbook")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.connect_attempts", 3)
	v.SetDefault("dictionary.base_url", "https://api.dictionaryapi.dev/api/v2/entries/en")
	v.SetDefault("dictionary.timeout", 10*time.Second)
	// Lookups are not cached unless a directory is configured
	v.SetDefault("dictionary.cache_directory", "")
	v.SetDefault("dictionary.requests_per_second", 5)
	v.SetDefault("store.coalesce_window", 500*time.Millisecond)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("templates.word_list_template", "")
	v.SetDefault("outputs.directory", "outputs")

	// Secrets are bound to environment variables only
	if err := v.BindEnv("database.password", "WORDBOOK_DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind WORDBOOK_DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("dictionary.base_url", "DICTIONARY_API_BASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind DICTIONARY_API_BASE_URL environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
