package config

import (
	"os"
	"path/filepath"
	"testing"

	"partquote/core/types"
	"partquote/internal/errors"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Server.Port != 10000 {
		t.Errorf("expected port 10000, got %d", cfg.Server.Port)
	}
	if cfg.OCR.ResizeWidth != 1000 {
		t.Errorf("expected resize width 1000, got %d", cfg.OCR.ResizeWidth)
	}
	if r := cfg.Extraction.Range(); r.Min != 5 || r.Max != 1500 {
		t.Errorf("unexpected range %+v", r)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != Default().Server.Port {
		t.Errorf("expected defaults, got %+v", cfg.Server)
	}
}

func TestSaveLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "partquote.json")

	cfg := Default()
	cfg.Server.Port = 8081
	cfg.Pricing.HourlyRate = 42
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Server.Port != 8081 {
		t.Errorf("expected port 8081, got %d", loaded.Server.Port)
	}
	if loaded.Pricing.HourlyRate != 42 {
		t.Errorf("expected hourly rate 42, got %v", loaded.Pricing.HourlyRate)
	}
}

func TestLoadPartialJSONKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partquote.json")
	writeFile(t, path, `{"server": {"port": 9000}}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MaxUploadMB != 10 {
		t.Errorf("expected default upload cap, got %d", cfg.Server.MaxUploadMB)
	}
	if cfg.OCR.Tesseract != "tesseract" {
		t.Errorf("expected default tesseract binary, got %q", cfg.OCR.Tesseract)
	}
}

func TestLoadHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partquote.hcl")
	writeFile(t, path, `
server {
  port = 8080
}

ocr {
  language = "deu"
  psm      = 6
}

pricing {
  hourly_rate = 40

  material "stahl" {
    density      = 7.85
    price_per_kg = 1.8
  }
}

extraction {
  max = 2000
}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.MaxUploadMB != 10 {
		t.Errorf("unset attribute lost its default: %d", cfg.Server.MaxUploadMB)
	}
	if cfg.OCR.Language != "deu" || cfg.OCR.PSM != 6 {
		t.Errorf("unexpected ocr config %+v", cfg.OCR)
	}
	if cfg.OCR.ResizeWidth != 1000 {
		t.Errorf("unset attribute lost its default: %d", cfg.OCR.ResizeWidth)
	}
	if cfg.Extraction.Min != 5 || cfg.Extraction.Max != 2000 {
		t.Errorf("unexpected extraction %+v", cfg.Extraction)
	}

	card, err := cfg.RateCard()
	if err != nil {
		t.Fatalf("rate card: %v", err)
	}
	steel, _ := card.Material(types.MaterialSteel)
	if steel.PricePerKg.String() != "1.8" {
		t.Errorf("expected steel price 1.8, got %s", steel.PricePerKg)
	}
	alu, _ := card.Material(types.MaterialAluminum)
	if alu.PricePerKg.String() != "7" {
		t.Errorf("expected default aluminium price 7, got %s", alu.PricePerKg)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"malformed json", "c.json", `{"server": `},
		{"malformed hcl", "c.hcl", `server {`},
		{"inverted range", "c.json", `{"extraction": {"min": 100, "max": 10}}`},
		{"zero margin", "c.hcl", "pricing {\n  margin = 0\n}\n"},
		{"unknown material", "c.hcl", "pricing {\n  material \"gold\" {\n    density = 19.3\n    price_per_kg = 50000\n  }\n}\n"},
		{"zero resize width", "c.json", `{"ocr": {"resize_width": 0}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			writeFile(t, path, tt.content)

			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsType(err, errors.TypeConfig) {
				t.Errorf("expected config error, got %v", err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("PARTQUOTE_LOG_LEVEL", "debug")

	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("expected port 3000, got %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %q", cfg.Logging.Level)
	}

	t.Setenv("PORT", "http")
	if err := Default().ApplyEnv(); !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("expected config error for bad PORT, got %v", err)
	}
}

func TestGlobal(t *testing.T) {
	orig := Get()
	defer Set(orig)

	cfg := Default()
	cfg.Version = "test"
	Set(cfg)
	if Get().Version != "test" {
		t.Error("global config not replaced")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
