// Package api is the HTTP surface of the quoting engine.
// The API only ingests uploads, runs OCR and serializes quotes; it never
// computes prices itself.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"partquote/adapters/imaging"
	"partquote/adapters/ocr"
	"partquote/core/engine"
	"partquote/core/output"
	"partquote/core/types"
	"partquote/internal/errors"
	"partquote/internal/logging"
)

// analysisFailed is the single client-facing fault message
const analysisFailed = "Fehler bei der Analyse"

// DefaultMaxUploadMB caps multipart bodies when Options leaves it unset
const DefaultMaxUploadMB = 10

// Options configures a Server
type Options struct {
	Version     string
	MaxUploadMB int
	Logger      *zap.Logger
}

// Server is the API server
type Server struct {
	engine     *engine.Engine
	normalizer *imaging.Normalizer
	recognizer ocr.Recognizer
	logger     *zap.Logger
	version    string
	maxUpload  int64
	mux        *http.ServeMux
	handler    http.Handler
}

// NewServer creates a new API server
func NewServer(eng *engine.Engine, normalizer *imaging.Normalizer, recognizer ocr.Recognizer, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logging.Logger
	}
	if opts.MaxUploadMB <= 0 {
		opts.MaxUploadMB = DefaultMaxUploadMB
	}

	s := &Server{
		engine:     eng,
		normalizer: normalizer,
		recognizer: recognizer,
		logger:     opts.Logger.With(zap.String("component", "api")),
		version:    opts.Version,
		maxUpload:  int64(opts.MaxUploadMB) << 20,
		mux:        http.NewServeMux(),
	}

	s.registerRoutes()

	handler := corsMiddleware(s.mux)
	handler = s.loggingMiddleware(handler)
	handler = s.recoveryMiddleware(handler)
	s.handler = requestIDMiddleware(handler)
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /pdf/analyze", s.handleAnalyze)
	s.mux.HandleFunc("POST /quote", s.handleQuote)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// handleAnalyze handles POST /pdf/analyze
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		s.writeFault(w, r, errors.Wrap(errors.TypeInput, "invalid multipart form", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	text, err := s.recognizeUpload(ctx, r)
	if err != nil {
		s.writeFault(w, r, err)
		return
	}

	req := engine.NewRequest(text, r.FormValue("stueckzahl"), r.FormValue("zielpreis"))
	s.writeQuote(w, r, s.engine.Quote(req))
}

func (s *Server) recognizeUpload(ctx context.Context, r *http.Request) (string, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", errors.Input("missing file").WithContext("field", "file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", errors.Wrap(errors.TypeInput, "failed to read upload", err)
	}

	prepared, err := s.normalizer.Normalize(data)
	if err != nil {
		return "", err
	}

	requestLogger(ctx, s.logger).Debug("upload prepared",
		zap.String("filename", header.Filename),
		zap.String("format", prepared.Format),
		zap.Int("width", prepared.Width),
		zap.Int("height", prepared.Height),
	)

	return s.recognizer.Recognize(ctx, prepared.PNG)
}

// handleQuote handles POST /quote
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, s.maxUpload))
	if err := dec.Decode(&req); err != nil {
		requestLogger(r.Context(), s.logger).Warn("invalid quote request", zap.Error(err))
		s.writeJSON(w, r, ErrorResponse{Error: invalidRequest}, http.StatusBadRequest)
		return
	}

	quote := s.engine.Quote(engine.NewRequest(req.Text, string(req.Quantity), string(req.TargetPrice)))
	s.writeQuote(w, r, quote)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, HealthResponse{
		Status:  "healthy",
		Version: s.version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	card := s.engine.RateCard()
	s.writeJSON(w, r, VersionResponse{
		Version:  s.version,
		Engine:   "partquote",
		RateCard: card.ContentHash().Hex(),
		Currency: card.Currency(),
	}, http.StatusOK)
}

func (s *Server) writeQuote(w http.ResponseWriter, r *http.Request, q types.Quote) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := (output.JSONFormatter{}).Render(w, q); err != nil {
		requestLogger(r.Context(), s.logger).Error("failed to write quote", zap.Error(err))
	}
}

// writeFault logs err and answers with the generic analysis error.
// Faults caused by the upload itself are logged at warn level.
func (s *Server) writeFault(w http.ResponseWriter, r *http.Request, err error) {
	log := requestLogger(r.Context(), s.logger).Error
	if errors.IsType(err, errors.TypeInput) || errors.IsType(err, errors.TypeImage) {
		log = requestLogger(r.Context(), s.logger).Warn
	}
	log("analysis failed",
		zap.String("error_type", string(errors.TypeOf(err))),
		zap.Error(err),
	)
	s.writeJSON(w, r, ErrorResponse{Error: analysisFailed}, http.StatusInternalServerError)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		requestLogger(r.Context(), s.logger).Error("failed to write response", zap.Error(err))
	}
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
