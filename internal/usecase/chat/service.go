// Package chat orchestrates FAQ matching into conversational replies:
// threshold tuning, fallback responses, suggestions, and history logging.
package chat

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/helpware/faqdex/internal/domain"
	"github.com/helpware/faqdex/internal/metrics"
)

const (
	// DefaultThreshold is the minimum similarity for a confident answer.
	DefaultThreshold = 0.15
	// DefaultTopK bounds how many ranked matches a query retains.
	DefaultTopK = 3
	// DefaultEmptyPrompt is the reply to blank input.
	DefaultEmptyPrompt = "Please ask me a question!"

	// alternativesLimit caps alternative questions attached to an answer.
	alternativesLimit = 2
	// missSuggestionCount is how many suggested questions a fallback carries.
	missSuggestionCount = 3
	// unknownCategory labels replies that matched nothing.
	unknownCategory = "unknown"
)

// DefaultFallbacks are the canned replies for unmatched questions.
var DefaultFallbacks = []string{
	"I'm sorry, I couldn't find a specific answer to your question. Could you try rephrasing it?",
	"I don't have information about that specific topic. Is there something else I can help you with?",
	"That's a great question! Unfortunately, I don't have that information in my knowledge base.",
	"I'm not sure about that. Could you try asking in a different way?",
	"I couldn't find a matching answer. Feel free to contact us directly for specific inquiries!",
}

// Config tunes the service. Zero values fall back to package defaults.
type Config struct {
	// Threshold is the minimum similarity for a match. Zero or negative
	// means DefaultThreshold; per-request overrides may still pass 0.
	Threshold float64
	// TopK bounds retained matches per query.
	TopK int
	// EmptyPrompt replies to blank input.
	EmptyPrompt string
	// Fallbacks replace DefaultFallbacks when non-empty.
	Fallbacks []string
	// Weights replace DefaultWeights when non-empty.
	Weights []CategoryWeight
	// Domain and LastUpdated describe the loaded corpus for statistics.
	Domain      string
	LastUpdated string
}

// Reply is one answered interaction.
type Reply struct {
	ID           string
	Answer       string
	Confidence   float64
	Matched      bool
	Question     string
	Category     string
	EntryID      string
	Alternatives []string
	Suggestions  []string
	CreatedAt    time.Time
}

// SimilarQuestion is one corpus entry ranked against another entry.
type SimilarQuestion struct {
	Index      int
	Question   string
	Category   string
	Similarity float64
}

// Statistics merges matcher stats with conversation volume and corpus
// metadata.
type Statistics struct {
	domain.Stats
	Conversations int
	Domain        string
	LastUpdated   string
}

// Service answers questions against a fitted corpus.
type Service struct {
	matcher Matcher
	history History
	logger  *zap.Logger

	threshold   float64
	topK        int
	emptyPrompt string
	fallbacks   []string
	weights     []CategoryWeight

	corpusDomain string
	lastUpdated  string

	// mu guards rng, which is not safe for concurrent use.
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a chat service. A nil rng is seeded from the clock; pass a
// seeded source for reproducible fallback and suggestion picks. A nil
// logger defaults to zap.NewNop().
func New(m Matcher, h History, cfg Config, rng *rand.Rand, logger *zap.Logger) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	topK := cfg.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	prompt := cfg.EmptyPrompt
	if prompt == "" {
		prompt = DefaultEmptyPrompt
	}
	fallbacks := cfg.Fallbacks
	if len(fallbacks) == 0 {
		fallbacks = DefaultFallbacks
	}
	weights := cfg.Weights
	if len(weights) == 0 {
		weights = DefaultWeights
	}

	return &Service{
		matcher:      m,
		history:      h,
		logger:       logger,
		threshold:    threshold,
		topK:         topK,
		emptyPrompt:  prompt,
		fallbacks:    append([]string(nil), fallbacks...),
		weights:      append([]CategoryWeight(nil), weights...),
		corpusDomain: cfg.Domain,
		lastUpdated:  cfg.LastUpdated,
		rng:          rng,
	}
}

// Ask answers a question with the service defaults.
func (s *Service) Ask(ctx context.Context, question string) (Reply, error) {
	return s.AskWithOptions(ctx, question, s.threshold, s.topK)
}

// AskWithOptions answers a question with per-request tuning. A negative
// threshold and a non-positive topK fall back to the service defaults;
// threshold 0 is honored and retains every ranked match.
func (s *Service) AskWithOptions(ctx context.Context, question string, threshold float64, topK int) (Reply, error) {
	if threshold < 0 {
		threshold = s.threshold
	}
	if topK <= 0 {
		topK = s.topK
	}

	reply := Reply{ID: uuid.NewString(), CreatedAt: time.Now().UTC()}

	if strings.TrimSpace(question) == "" {
		reply.Answer = s.emptyPrompt
		s.record(ctx, question, "", reply)
		return reply, nil
	}

	outcome, err := s.matcher.BestMatch(question, threshold, topK)
	if err != nil {
		return Reply{}, fmt.Errorf("best match: %w", err)
	}

	if best, ok := outcome.Best(); ok {
		entry, err := s.matcher.EntryAt(best.Index())
		if err != nil {
			return Reply{}, fmt.Errorf("entry at %d: %w", best.Index(), err)
		}
		alternatives, err := s.alternativeQuestions(outcome)
		if err != nil {
			return Reply{}, err
		}
		reply.Answer = entry.Answer()
		reply.Confidence = best.Score()
		reply.Matched = true
		reply.Question = entry.Question()
		reply.Category = entry.Category()
		reply.EntryID = entry.ID()
		reply.Alternatives = alternatives
	} else {
		suggested, err := s.RandomQuestions(missSuggestionCount)
		if err != nil {
			return Reply{}, err
		}
		reply.Answer = s.pickFallback()
		reply.Confidence = outcome.MaxSimilarity()
		reply.Category = unknownCategory
		reply.Suggestions = questionTexts(suggested)
	}

	s.record(ctx, question, s.matcher.Normalize(question), reply)
	return reply, nil
}

// SimilarQuestions ranks the corpus against the entry at the given
// position, excluding the entry itself.
func (s *Service) SimilarQuestions(index, topK int) ([]SimilarQuestion, error) {
	matches, err := s.matcher.Similar(index, topK)
	if err != nil {
		return nil, err
	}
	out := make([]SimilarQuestion, 0, len(matches))
	for _, m := range matches {
		entry, err := s.matcher.EntryAt(m.Index())
		if err != nil {
			return nil, fmt.Errorf("entry at %d: %w", m.Index(), err)
		}
		out = append(out, SimilarQuestion{
			Index:      m.Index(),
			Question:   entry.Question(),
			Category:   entry.Category(),
			Similarity: m.Score(),
		})
	}
	return out, nil
}

// QuestionsByCategory lists entries in a category, capped at count.
func (s *Service) QuestionsByCategory(category string, count int) ([]domain.Entry, error) {
	return s.matcher.ByCategory(category, count)
}

// SearchQuestions lists entries sharing at least one keyword, capped at count.
func (s *Service) SearchQuestions(keywords []string, count int) ([]domain.Entry, error) {
	return s.matcher.ByKeywords(keywords, count)
}

// History lists logged interactions in chronological order. A positive
// limit keeps only the most recent ones.
func (s *Service) History(ctx context.Context, limit int) ([]domain.Record, error) {
	return s.history.List(ctx, limit)
}

// ClearHistory removes all logged interactions.
func (s *Service) ClearHistory(ctx context.Context) error {
	if err := s.history.Clear(ctx); err != nil {
		return err
	}
	metrics.HistoryRecords.Set(0)
	return nil
}

// Statistics reports corpus and conversation figures. An unreachable
// history store degrades the conversation count to zero instead of
// failing the whole report.
func (s *Service) Statistics(ctx context.Context) (Statistics, error) {
	stats, err := s.matcher.Stats()
	if err != nil {
		return Statistics{}, err
	}

	conversations, err := s.history.Count(ctx)
	if err != nil {
		s.logger.Warn("History count unavailable", zap.Error(err))
		conversations = 0
	}

	return Statistics{
		Stats:         stats,
		Conversations: conversations,
		Domain:        s.corpusDomain,
		LastUpdated:   s.lastUpdated,
	}, nil
}

// alternativeQuestions returns the questions ranked just below the best
// match, capped at alternativesLimit.
func (s *Service) alternativeQuestions(outcome domain.Outcome) ([]string, error) {
	retained := outcome.Alternatives()
	if len(retained) <= 1 {
		return nil, nil
	}
	retained = retained[1:]
	if len(retained) > alternativesLimit {
		retained = retained[:alternativesLimit]
	}
	texts := make([]string, 0, len(retained))
	for _, m := range retained {
		entry, err := s.matcher.EntryAt(m.Index())
		if err != nil {
			return nil, fmt.Errorf("entry at %d: %w", m.Index(), err)
		}
		texts = append(texts, entry.Question())
	}
	return texts, nil
}

func (s *Service) record(ctx context.Context, input, normalized string, reply Reply) {
	rec := domain.Record{
		ID:              reply.ID,
		Input:           input,
		NormalizedInput: normalized,
		Reply:           reply.Answer,
		Matched:         reply.Matched,
		Similarity:      reply.Confidence,
		CreatedAt:       reply.CreatedAt,
	}
	if err := s.history.Append(ctx, rec); err != nil {
		s.logger.Error("History append failed",
			zap.String("interaction_id", rec.ID),
			zap.Error(err),
		)
		return
	}
	if n, err := s.history.Count(ctx); err == nil {
		metrics.HistoryRecords.Set(float64(n))
	}
}

func (s *Service) pickFallback() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fallbacks[s.rng.Intn(len(s.fallbacks))]
}

func questionTexts(entries []domain.Entry) []string {
	texts := make([]string, len(entries))
	for i := range entries {
		texts[i] = entries[i].Question()
	}
	return texts
}
