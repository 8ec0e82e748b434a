// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"partquote/core/measure"
	"partquote/core/pricing"
	"partquote/internal/errors"
	"partquote/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// OCR contains text recognition configuration
	OCR OCRConfig `json:"ocr"`

	// Pricing contains the rate card
	Pricing pricing.RateCardSpec `json:"pricing"`

	// Extraction contains the plausible measurement range
	Extraction ExtractionConfig `json:"extraction"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// ServerConfig contains HTTP settings
type ServerConfig struct {
	// Port is the listen port; PORT in the environment wins
	Port int `json:"port"`

	// MaxUploadMB caps the multipart body
	MaxUploadMB int `json:"max_upload_mb"`

	// ReadTimeoutSeconds bounds reading a request
	ReadTimeoutSeconds int `json:"read_timeout_seconds"`

	// WriteTimeoutSeconds bounds OCR plus response writing
	WriteTimeoutSeconds int `json:"write_timeout_seconds"`
}

// OCRConfig contains recognizer settings
type OCRConfig struct {
	// Tesseract is the binary name or absolute path
	Tesseract string `json:"tesseract"`

	// Language is the tesseract language code
	Language string `json:"language"`

	// TessdataDir overrides the tessdata location
	TessdataDir string `json:"tessdata_dir,omitempty"`

	// PSM is the page segmentation mode, 0 for tesseract's default
	PSM int `json:"psm,omitempty"`

	// ResizeWidth is the width uploads are scaled to before OCR
	ResizeWidth int `json:"resize_width"`

	// TimeoutSeconds bounds a single OCR run
	TimeoutSeconds int `json:"timeout_seconds"`
}

// ExtractionConfig is the plausible millimeter range for dimensions
type ExtractionConfig struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Range converts to the extractor's range
func (e ExtractionConfig) Range() measure.Range {
	return measure.Range{Min: e.Min, Max: e.Max}
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			Port:                10000,
			MaxUploadMB:         10,
			ReadTimeoutSeconds:  30,
			WriteTimeoutSeconds: 120,
		},
		OCR: OCRConfig{
			Tesseract:      "tesseract",
			Language:       "deu+eng",
			ResizeWidth:    1000,
			TimeoutSeconds: 60,
		},
		Pricing: pricing.DefaultRateCardSpec(),
		Extraction: ExtractionConfig{
			Min: measure.DefaultMin,
			Max: measure.DefaultMax,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file. JSON and HCL are chosen by
// extension; a missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("failed to read config", err)
	}

	config := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		if err := decodeHCL(path, data, config); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return nil, errors.Wrapf(errors.TypeConfig, err, "failed to parse %s", path)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides settings from the environment
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return errors.Newf(errors.TypeConfig, "invalid PORT: %q", v)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("PARTQUOTE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate checks the settings that cannot be caught later
func (c *Config) Validate() error {
	if c.Extraction.Min < 0 || c.Extraction.Min > c.Extraction.Max {
		return errors.Newf(errors.TypeConfig, "invalid extraction range [%v, %v]", c.Extraction.Min, c.Extraction.Max)
	}
	if c.Server.MaxUploadMB <= 0 {
		return errors.New(errors.TypeConfig, "server.max_upload_mb must be positive")
	}
	if c.OCR.ResizeWidth <= 0 {
		return errors.New(errors.TypeConfig, "ocr.resize_width must be positive")
	}
	if _, err := c.RateCard(); err != nil {
		return err
	}
	return nil
}

// RateCard builds the immutable rate card
func (c *Config) RateCard() (*pricing.RateCard, error) {
	return pricing.NewRateCard(c.Pricing)
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
