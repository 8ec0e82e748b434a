// Package ocr recognizes text in drawing images.
package ocr

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"partquote/internal/errors"
)

// Recognizer turns a PNG image into text
type Recognizer interface {
	Recognize(ctx context.Context, png []byte) (string, error)
}

// Config configures the tesseract recognizer
type Config struct {
	Tesseract   string
	Language    string
	TessdataDir string
	PSM         int
	Timeout     time.Duration
}

// Tesseract runs the tesseract CLI on a temporary file
type Tesseract struct {
	cfg    Config
	runner Runner
	logger *zap.Logger
}

// NewTesseract creates a recognizer. A nil runner uses os/exec.
func NewTesseract(cfg Config, runner Runner, logger *zap.Logger) *Tesseract {
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if runner == nil {
		runner = ExecRunner{Logger: logger}
	}
	return &Tesseract{cfg: cfg, runner: runner, logger: logger.With(zap.String("component", "ocr"))}
}

// Recognize implements Recognizer
func (t *Tesseract) Recognize(ctx context.Context, png []byte) (string, error) {
	if len(png) == 0 {
		return "", errors.New(errors.TypeOCR, "no image data")
	}

	dir, err := os.MkdirTemp("", "partquote-ocr-*")
	if err != nil {
		return "", errors.OCR("failed to create temp dir", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "drawing.png")
	if err := os.WriteFile(path, png, 0600); err != nil {
		return "", errors.OCR("failed to write image", err)
	}

	if t.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.cfg.Timeout)
		defer cancel()
	}

	// tesseract <file> stdout -l <lang>
	out, errb, err := t.runner.Run(ctx, t.cfg.Tesseract, t.args(path)...)
	if err != nil {
		return "", errors.OCR("tesseract failed", err).
			WithContext("stderr", truncate(strings.TrimSpace(string(errb)), 1<<10))
	}

	text := Normalize(string(out))
	t.logger.Debug("text recognized", zap.Int("chars", len(text)))
	return text, nil
}

func (t *Tesseract) args(path string) []string {
	args := []string{path, "stdout", "-l", t.cfg.Language}
	if t.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", t.cfg.TessdataDir)
	}
	if t.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(t.cfg.PSM))
	}
	return args
}

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
)

// Normalize collapses whitespace noise while keeping line breaks. Digits
// are never touched.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = strings.ReplaceAll(s, "\f", "\n")
	s = reTabs.ReplaceAllString(s, " ")
	s = reMultiSpace.ReplaceAllString(s, " ")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Static is a Recognizer that returns fixed text
type Static string

// Recognize implements Recognizer
func (s Static) Recognize(context.Context, []byte) (string, error) {
	return string(s), nil
}
