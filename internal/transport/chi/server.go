package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/helpware/faqdex/internal/domain"
	"github.com/helpware/faqdex/internal/metrics"
	chatuc "github.com/helpware/faqdex/internal/usecase/chat"
	healthuc "github.com/helpware/faqdex/internal/usecase/health"
)

const (
	maxThreshold   = 1.0
	maxTopK        = 50
	maxListLimit   = 100
	exportFilename = "faq_history"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the chat and health services over HTTP.
type Server struct {
	chat          *chatuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(chat *chatuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		chat:   chat,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEntryNotFound, http.StatusNotFound, CodeQuestionNotFound),
		sentinelHandler(domain.ErrNotFitted, http.StatusServiceUnavailable, CodeCorpusNotReady),
		sentinelHandler(domain.ErrEmptyCorpus, http.StatusServiceUnavailable, CodeCorpusNotReady),
		sentinelHandler(domain.ErrHistoryUnavailable, http.StatusServiceUnavailable, CodeHistoryUnavailable),
		sentinelHandler(domain.ErrInvalidEntry, http.StatusBadRequest, CodeValidationFailed),
	}
	return s
}

// Register mounts all API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Post("/ask", s.Ask)
	r.Get("/questions/{index}/similar", s.SimilarQuestions)
	r.Get("/categories", s.Categories)
	r.Get("/categories/{category}", s.CategoryQuestions)
	r.Get("/search", s.SearchQuestions)
	r.Get("/suggestions", s.Suggestions)
	r.Get("/suggestions/random", s.RandomSuggestions)
	r.Get("/stats", s.Stats)
	r.Get("/history", s.History)
	r.Delete("/history", s.ClearHistory)
	r.Get("/history/export", s.ExportHistory)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Ask handles POST /ask.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// Absent threshold means the service default; an explicit 0 retains
	// every best match.
	threshold := -1.0
	if req.Threshold != nil {
		if *req.Threshold < 0 || *req.Threshold > maxThreshold {
			writeError(w, http.StatusBadRequest, CodeValidationFailed,
				fmt.Sprintf("threshold must be between 0 and %g", maxThreshold))
			return
		}
		threshold = *req.Threshold
	}

	topK := 0
	if req.TopK != nil {
		if *req.TopK <= 0 || *req.TopK > maxTopK {
			writeError(w, http.StatusBadRequest, CodeValidationFailed,
				fmt.Sprintf("top_k must be between 1 and %d", maxTopK))
			return
		}
		topK = *req.TopK
	}

	reply, err := s.chat.AskWithOptions(r.Context(), req.Question, threshold, topK)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	observeQuery(req.Question, reply)
	writeJSON(w, http.StatusOK, replyToResponse(reply))
}

// SimilarQuestions handles GET /questions/{index}/similar.
func (s *Server) SimilarQuestions(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "index must be an integer")
		return
	}

	topK, ok := queryCount(w, r, "top_k", 0)
	if !ok {
		return
	}

	similar, err := s.chat.SimilarQuestions(index, topK)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]SimilarQuestionResponse, len(similar))
	for i, sq := range similar {
		items[i] = SimilarQuestionResponse{
			Index:      sq.Index,
			Question:   sq.Question,
			Category:   sq.Category,
			Similarity: sq.Similarity,
		}
	}

	writeJSON(w, http.StatusOK, SimilarListResponse{Items: items, Total: len(items)})
}

// Categories handles GET /categories.
func (s *Server) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.chat.Categories()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CategoryListResponse{Items: categories, Total: len(categories)})
}

// CategoryQuestions handles GET /categories/{category}.
func (s *Server) CategoryQuestions(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	limit, ok := queryCount(w, r, "limit", 0)
	if !ok {
		return
	}

	entries, err := s.chat.QuestionsByCategory(category, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entryListResponse(entries))
}

// SearchQuestions handles GET /search.
func (s *Server) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	keywords := r.URL.Query()["keyword"]
	if len(keywords) == 0 {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "at least one keyword is required")
		return
	}

	limit, ok := queryCount(w, r, "limit", 0)
	if !ok {
		return
	}

	entries, err := s.chat.SearchQuestions(keywords, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entryListResponse(entries))
}

// Suggestions handles GET /suggestions.
func (s *Server) Suggestions(w http.ResponseWriter, r *http.Request) {
	count, ok := queryCount(w, r, "count", 0)
	if !ok {
		return
	}

	entries, err := s.chat.PopularQuestions(count)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entryListResponse(entries))
}

// RandomSuggestions handles GET /suggestions/random.
func (s *Server) RandomSuggestions(w http.ResponseWriter, r *http.Request) {
	count, ok := queryCount(w, r, "count", 0)
	if !ok {
		return
	}

	entries, err := s.chat.RandomQuestions(count)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entryListResponse(entries))
}

// Stats handles GET /stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.chat.Statistics(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statsToResponse(stats))
}

// History handles GET /history.
func (s *Server) History(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryCount(w, r, "limit", 0)
	if !ok {
		return
	}

	records, err := s.chat.History(r.Context(), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]RecordResponse, len(records))
	for i := range records {
		items[i] = recordToResponse(records[i])
	}

	writeJSON(w, http.StatusOK, HistoryListResponse{Items: items, Total: len(items)})
}

// ClearHistory handles DELETE /history.
func (s *Server) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.chat.ClearHistory(r.Context()); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportHistory handles GET /history/export. The full history is served
// as a downloadable indented JSON document.
func (s *Server) ExportHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.chat.History(r.Context(), 0)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]RecordResponse, len(records))
	for i := range records {
		items[i] = recordToResponse(records[i])
	}

	body, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	filename := fmt.Sprintf("%s_%s.json", exportFilename, time.Now().UTC().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checksToResponse(report.Checks),
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// queryCount parses an optional non-negative integer query parameter.
// Reports false after writing a validation error.
func queryCount(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > maxListLimit {
		writeError(w, http.StatusBadRequest, CodeValidationFailed,
			fmt.Sprintf("%s must be an integer between 0 and %d", name, maxListLimit))
		return 0, false
	}
	return n, true
}

// observeQuery records outcome and similarity metrics for one ask call.
func observeQuery(question string, reply chatuc.Reply) {
	if strings.TrimSpace(question) == "" {
		metrics.QueriesTotal.WithLabelValues(metrics.OutcomeEmpty).Inc()
		return
	}
	outcome := metrics.OutcomeFallback
	if reply.Matched {
		outcome = metrics.OutcomeMatched
	}
	metrics.QueriesTotal.WithLabelValues(outcome).Inc()
	metrics.QuerySimilarity.Observe(reply.Confidence)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEntryNotFound,
		domain.ErrNotFitted,
		domain.ErrEmptyCorpus,
		domain.ErrHistoryUnavailable,
		domain.ErrInvalidEntry,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
