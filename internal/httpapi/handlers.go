package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"textrefine/internal/telemetry"
	"textrefine/pkg/pipeline"
	"textrefine/pkg/scoring"
)

// Server bundles the pipeline and its transport-boundary concerns.
type Server struct {
	pipeline          *pipeline.Pipeline
	evaluationLimiter *RateLimiter
	healthLimiter     *RateLimiter
	metrics           *telemetry.Metrics
	log               *zap.Logger
}

// NewServer builds the HTTP transport around an already-constructed
// pipeline. metrics may be nil, in which case no collectors are updated.
func NewServer(p *pipeline.Pipeline, evaluationPerMinute int, metrics *telemetry.Metrics, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		pipeline:          p,
		evaluationLimiter: NewRateLimiter(evaluationPerMinute),
		healthLimiter:     NewRateLimiter(100),
		metrics:           metrics,
		log:               log,
	}
}

// Routes registers the service's endpoints on mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/evaluation", s.handleEvaluation)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /", s.handleHealth)
	mux.Handle("GET /metrics", metricsHandler())
}

type evaluationRequest struct {
	Text     string `json:"text"`
	Topic    string `json:"topic,omitempty"`
	Audience string `json:"audience,omitempty"`
}

func (s *Server) handleEvaluation(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	clientIP := ClientIP(r)
	requestID := uuid.NewString()
	w.Header().Set("X-Request-Id", requestID)

	if !s.evaluationLimiter.Allow(clientIP) {
		s.writeError(w, "evaluation", http.StatusTooManyRequests, "Rate limit exceeded, try again later.")
		return
	}

	var req evaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "evaluation", http.StatusBadRequest, "Malformed request body.")
		return
	}

	result, err := s.pipeline.Evaluate(r.Context(), pipeline.Request{
		Text:     req.Text,
		Topic:    req.Topic,
		Audience: req.Audience,
	})
	if err != nil {
		s.writeEvaluationError(w, clientIP, requestID, err)
		return
	}

	s.writeJSON(w, "evaluation", http.StatusOK, result)
	s.observeDuration("evaluation", start)
}

func (s *Server) writeEvaluationError(w http.ResponseWriter, clientIP, requestID string, err error) {
	// Internal details (upstream identifiers, raw error strings) are logged
	// with the client IP and request ID attached, never echoed to the
	// caller.
	s.log.Error("evaluation failed",
		zap.String("client_ip", clientIP),
		zap.String("request_id", requestID),
		zap.Error(err))

	switch {
	case errors.Is(err, scoring.ErrInputTooShort):
		s.writeError(w, "evaluation", http.StatusBadRequest, scoring.ErrInputTooShort.Error())
	case errors.Is(err, scoring.ErrInvalidAudience):
		s.writeError(w, "evaluation", http.StatusBadRequest, "Invalid audience tag.")
	case errors.Is(err, scoring.ErrUpstreamTimeout):
		if s.metrics != nil {
			s.metrics.UpstreamTimeouts.Inc()
		}
		s.writeError(w, "evaluation", http.StatusRequestTimeout, "Server timeout waiting for the grammar engine.")
	default:
		s.writeError(w, "evaluation", http.StatusInternalServerError, "Evaluation failed due to an internal error.")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	clientIP := ClientIP(r)
	if !s.healthLimiter.Allow(clientIP) {
		s.writeError(w, "health", http.StatusTooManyRequests, "Rate limit exceeded, try again later.")
		return
	}
	s.writeJSON(w, "health", http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "Text Refine Score Engine",
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, route string, status int, body any) {
	if s.metrics != nil {
		s.metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (s *Server) writeError(w http.ResponseWriter, route string, status int, message string) {
	s.writeJSON(w, route, status, map[string]string{"error": message})
}

func (s *Server) observeDuration(route string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
