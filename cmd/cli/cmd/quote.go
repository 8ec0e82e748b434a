// Package cmd - quote and analyze commands
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"partquote/adapters/imaging"
	"partquote/adapters/ocr"
	"partquote/core/engine"
	"partquote/core/output"
	"partquote/core/types"
	"partquote/core/ui"
	"partquote/internal/config"
	"partquote/internal/logging"
)

var (
	quantity     string
	targetPrice  string
	outputFormat string
)

// quoteCmd prices already recognized text
var quoteCmd = &cobra.Command{
	Use:   "quote [file|-]",
	Short: "Quote from recognized drawing text",
	Long: `Read the text recognized on a drawing and print a quote.

Without an argument, or with "-", the text is read from stdin.

Examples:
  partquote quote drawing.txt
  partquote quote --quantity 25 --target-price "ca. 80" drawing.txt
  tesseract drawing.png stdout | partquote quote -f json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuote,
}

// analyzeCmd runs image preparation and OCR before quoting
var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Recognize a drawing image and quote it",
	Long: `Scale a PNG, JPEG or GIF drawing to the configured width, recognize
its text with tesseract and print a quote.

Examples:
  partquote analyze drawing.png
  partquote analyze --format json -q 10 scan.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	for _, c := range []*cobra.Command{quoteCmd, analyzeCmd} {
		c.Flags().StringVarP(&quantity, "quantity", "q", "1", "batch size; unusable values count as 1")
		c.Flags().StringVarP(&targetPrice, "target-price", "t", "", "customer target price, echoed unchanged")
		c.Flags().StringVarP(&outputFormat, "format", "f", "cli", "output format (cli, json)")
		rootCmd.AddCommand(c)
	}
}

func runQuote(cmd *cobra.Command, args []string) error {
	formatter, err := output.ForFormat(output.Format(outputFormat))
	if err != nil {
		return err
	}

	text, err := readText(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}

	return printQuote(cmd, formatter, eng.Quote(engine.NewRequest(text, quantity, targetPrice)))
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	formatter, err := output.ForFormat(output.Format(outputFormat))
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	cfg := config.Get()
	prepared, err := imaging.NewNormalizer(cfg.OCR.ResizeWidth).Normalize(data)
	if err != nil {
		return err
	}

	recognizer := ocr.NewTesseract(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		Language:    cfg.OCR.Language,
		TessdataDir: cfg.OCR.TessdataDir,
		PSM:         cfg.OCR.PSM,
		Timeout:     time.Duration(cfg.OCR.TimeoutSeconds) * time.Second,
	}, nil, logging.Logger)

	text, err := recognizer.Recognize(context.Background(), prepared.PNG)
	if err != nil {
		return err
	}
	logging.Debug("text recognized", zap.String("file", args[0]), zap.Int("chars", len(text)))
	if strings.TrimSpace(text) == "" {
		logging.Warn("no text recognized", zap.String("file", args[0]))
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}

	return printQuote(cmd, formatter, eng.Quote(engine.NewRequest(text, quantity, targetPrice)))
}

func readText(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read text: %w", err)
	}
	return string(data), nil
}

// printQuote renders q on stdout and, for humans, a status line on stderr
func printQuote(cmd *cobra.Command, f output.Formatter, q types.Quote) error {
	if err := f.Render(cmd.OutOrStdout(), q); err != nil {
		return err
	}
	if f.Format() == output.FormatCLI {
		ui.NewAutoWriter(cmd.ErrOrStderr()).Outcome(q)
	}
	return nil
}
