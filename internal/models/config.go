package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the library configuration loaded from YAML.
type Config struct {
	OCR        OCRConfig        `yaml:"ocr"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Ledger     LedgerConfig     `yaml:"ledger"`
	Archive    ArchiveConfig    `yaml:"archive"`
	Log        LogConfig        `yaml:"log"`

	// Categories passed to the classifier collaborator.
	Categories []string `yaml:"categories"`
}

// OCRConfig represents OCR-specific configuration.
type OCRConfig struct {
	Language string `yaml:"language"` // default "eng"
	// Workers sizes the document fan-out pool; 0 means NumCPU.
	Workers int `yaml:"workers"`
}

// ClassifierConfig selects and configures the category classifier adapter.
type ClassifierConfig struct {
	Provider string `yaml:"provider"` // "openai" or "gemini"

	OpenAI struct {
		APIKey  string `yaml:"api_key"`
		BaseURL string `yaml:"base_url,omitempty"`
		Model   string `yaml:"model"`
	} `yaml:"openai"`

	Gemini struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"gemini"`
}

// LedgerConfig configures the expense ledger adapter.
type LedgerConfig struct {
	DatabaseURL string `yaml:"database_url"`
}

// ArchiveConfig configures the scan archive adapter.
type ArchiveConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `yaml:"level"`  // trace..panic, default info
	Format string `yaml:"format"` // json or console
}

// LoadConfig reads a YAML config file and applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if lang := os.Getenv("OCR_LANGUAGE"); lang != "" {
		config.OCR.Language = lang
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.Classifier.OpenAI.APIKey = apiKey
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		config.Classifier.OpenAI.BaseURL = baseURL
	}
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.Classifier.Gemini.APIKey = apiKey
	}
	if provider := os.Getenv("CLASSIFIER_PROVIDER"); provider != "" {
		config.Classifier.Provider = provider
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		config.Ledger.DatabaseURL = dsn
	}
	if endpoint := os.Getenv("MINIO_ENDPOINT"); endpoint != "" {
		config.Archive.Endpoint = endpoint
	}
	if accessKey := os.Getenv("MINIO_ACCESS_KEY"); accessKey != "" {
		config.Archive.AccessKey = accessKey
	}
	if secretKey := os.Getenv("MINIO_SECRET_KEY"); secretKey != "" {
		config.Archive.SecretKey = secretKey
	}
	if bucket := os.Getenv("MINIO_BUCKET"); bucket != "" {
		config.Archive.Bucket = bucket
	}

	if config.OCR.Language == "" {
		config.OCR.Language = "eng"
	}

	return &config, nil
}
