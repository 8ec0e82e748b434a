package config

import (
	"github.com/hashicorp/hcl/v2/hclsimple"

	"partquote/core/pricing"
	"partquote/internal/errors"
)

// hclFile is the HCL form of Config. Every attribute is optional and only
// the ones present in the file override the defaults.
//
//	server { port = 8080 }
//	pricing {
//	  hourly_rate = 40
//	  material "stahl" {
//	    density      = 7.85
//	    price_per_kg = 1.6
//	  }
//	}
type hclFile struct {
	Version    *string        `hcl:"version,optional"`
	Server     *hclServer     `hcl:"server,block"`
	OCR        *hclOCR        `hcl:"ocr,block"`
	Pricing    *hclPricing    `hcl:"pricing,block"`
	Extraction *hclExtraction `hcl:"extraction,block"`
	Logging    *hclLogging    `hcl:"logging,block"`
}

type hclServer struct {
	Port                *int `hcl:"port,optional"`
	MaxUploadMB         *int `hcl:"max_upload_mb,optional"`
	ReadTimeoutSeconds  *int `hcl:"read_timeout_seconds,optional"`
	WriteTimeoutSeconds *int `hcl:"write_timeout_seconds,optional"`
}

type hclOCR struct {
	Tesseract      *string `hcl:"tesseract,optional"`
	Language       *string `hcl:"language,optional"`
	TessdataDir    *string `hcl:"tessdata_dir,optional"`
	PSM            *int    `hcl:"psm,optional"`
	ResizeWidth    *int    `hcl:"resize_width,optional"`
	TimeoutSeconds *int    `hcl:"timeout_seconds,optional"`
}

type hclPricing struct {
	Currency              *string       `hcl:"currency,optional"`
	MachiningMinutesPerKg *float64      `hcl:"machining_minutes_per_kg,optional"`
	HourlyRate            *float64      `hcl:"hourly_rate,optional"`
	SetupCost             *float64      `hcl:"setup_cost,optional"`
	ProgrammingCost       *float64      `hcl:"programming_cost,optional"`
	Margin                *float64      `hcl:"margin,optional"`
	MaxWeightKg           *float64      `hcl:"max_weight_kg,optional"`
	MaxUnitPrice          *float64      `hcl:"max_unit_price,optional"`
	Materials             []hclMaterial `hcl:"material,block"`
}

type hclMaterial struct {
	Name       string  `hcl:"name,label"`
	Density    float64 `hcl:"density"`
	PricePerKg float64 `hcl:"price_per_kg"`
}

type hclExtraction struct {
	Min *float64 `hcl:"min,optional"`
	Max *float64 `hcl:"max,optional"`
}

type hclLogging struct {
	Level       *string `hcl:"level,optional"`
	Format      *string `hcl:"format,optional"`
	Output      *string `hcl:"output,optional"`
	Development *bool   `hcl:"development,optional"`
}

func decodeHCL(path string, data []byte, config *Config) error {
	var file hclFile
	if err := hclsimple.Decode(path, data, nil, &file); err != nil {
		return errors.Wrapf(errors.TypeConfig, err, "failed to parse %s", path)
	}

	set(&config.Version, file.Version)

	if s := file.Server; s != nil {
		set(&config.Server.Port, s.Port)
		set(&config.Server.MaxUploadMB, s.MaxUploadMB)
		set(&config.Server.ReadTimeoutSeconds, s.ReadTimeoutSeconds)
		set(&config.Server.WriteTimeoutSeconds, s.WriteTimeoutSeconds)
	}

	if o := file.OCR; o != nil {
		set(&config.OCR.Tesseract, o.Tesseract)
		set(&config.OCR.Language, o.Language)
		set(&config.OCR.TessdataDir, o.TessdataDir)
		set(&config.OCR.PSM, o.PSM)
		set(&config.OCR.ResizeWidth, o.ResizeWidth)
		set(&config.OCR.TimeoutSeconds, o.TimeoutSeconds)
	}

	if p := file.Pricing; p != nil {
		spec := &config.Pricing
		set(&spec.Currency, p.Currency)
		set(&spec.MachiningMinutesPerKg, p.MachiningMinutesPerKg)
		set(&spec.HourlyRate, p.HourlyRate)
		set(&spec.SetupCost, p.SetupCost)
		set(&spec.ProgrammingCost, p.ProgrammingCost)
		set(&spec.Margin, p.Margin)
		set(&spec.MaxWeightKg, p.MaxWeightKg)
		set(&spec.MaxUnitPrice, p.MaxUnitPrice)

		// Material blocks override single entries; the rest keep their defaults
		materials := make(map[string]pricing.MaterialSpec, len(spec.Materials))
		for name, ms := range spec.Materials {
			materials[name] = ms
		}
		for _, m := range p.Materials {
			materials[m.Name] = pricing.MaterialSpec{Density: m.Density, PricePerKg: m.PricePerKg}
		}
		spec.Materials = materials
	}

	if e := file.Extraction; e != nil {
		set(&config.Extraction.Min, e.Min)
		set(&config.Extraction.Max, e.Max)
	}

	if l := file.Logging; l != nil {
		set(&config.Logging.Level, l.Level)
		set(&config.Logging.Format, l.Format)
		set(&config.Logging.Output, l.Output)
		set(&config.Logging.Development, l.Development)
	}

	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
