// Package analysis implements the orchestration use-cases: run content
// through the provider chain, persist the outcome and serve retrieval,
// summary and export operations.
package analysis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/contentlens/internal/application"
	"github.com/bryanwahyu/contentlens/internal/costs"
	domainai "github.com/bryanwahyu/contentlens/internal/domain/ai"
	"github.com/bryanwahyu/contentlens/internal/domain/analysis"
	"github.com/bryanwahyu/contentlens/internal/infra/cache"
)

var (
	// ErrEmptyContent rejects blank submissions before any provider work.
	ErrEmptyContent = errors.New("content is required")

	// ErrNotFound reports a lookup for an unknown analysis id.
	ErrNotFound = errors.New("analysis not found")

	// ErrExportUnavailable reports that no export store is configured.
	ErrExportUnavailable = errors.New("export store not configured")
)

const (
	defaultRetryAttempts   = 2
	defaultRetryDelay      = 500 * time.Millisecond
	defaultCallTimeout     = 60 * time.Second
	defaultMaxContentChars = 50000
	defaultCacheTTL        = time.Hour
)

// Service orchestrates providers and owns the analysis lifecycle. Fallback
// must always be set; everything else is optional and degrades gracefully.
type Service struct {
	Providers map[string]domainai.Provider
	Order     []string
	Fallback  domainai.Provider
	Costs     *costs.Monitor
	Repo      analysis.Repository
	Cache     cache.Cache
	Exports   analysis.ExportStore
	Clock     application.Clock

	RetryAttempts   int
	RetryDelay      time.Duration
	CallTimeout     time.Duration
	MaxContentChars int
	CacheTTL        time.Duration

	mu      sync.Mutex
	skipped map[string]bool
}

type AnalyzeCommand struct {
	Content     string
	URL         string
	ContentType analysis.ContentType
	Provider    string
}

// Analyze runs the full pipeline. Once input validation passes it cannot
// fail with a provider error: the fallback analyzer is the terminal step.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (*analysis.Analysis, error) {
	content := strings.TrimSpace(cmd.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if len(content) > s.maxContentChars() {
		return nil, fmt.Errorf("%w: %d chars (max %d)", domainai.ErrContentTooLarge, len(content), s.maxContentChars())
	}
	contentType := cmd.ContentType
	if contentType == "" {
		contentType = analysis.ContentTypeText
	}

	req := domainai.Request{Content: content, URL: cmd.URL, ContentType: contentType}

	res := s.cachedResult(ctx, cmd.Provider, cmd.URL, content)
	if res == nil {
		res = s.runProviders(ctx, req, cmd.Provider)
		s.storeCache(ctx, cmd.Provider, cmd.URL, content, res)
	}

	now := s.clock().Now()
	record := &analysis.Analysis{
		ID:          newID(now),
		URL:         cmd.URL,
		ContentType: contentType,
		Result:      *res,
		CreatedAt:   now.UTC(),
	}
	if s.Repo != nil {
		if err := s.Repo.Save(ctx, record); err != nil {
			// The caller already has a usable result; losing history is
			// not worth failing the request over.
			log.Printf("analysis save failed id=%s: %v", record.ID, err)
		}
	}
	return record, nil
}

// runProviders walks the candidate chain and always produces a result.
func (s *Service) runProviders(ctx context.Context, req domainai.Request, requested string) *analysis.Result {
	for _, name := range s.candidates(requested) {
		provider := s.Providers[name]
		if provider == nil || s.isSkipped(name) {
			continue
		}
		if s.Costs != nil {
			if ok, reason := s.Costs.Check(name, len(req.Content)); !ok {
				log.Printf("cost ceiling reached, skipping provider: %s", reason)
				continue
			}
		}
		if res := s.tryProvider(ctx, name, provider, req); res != nil {
			return res
		}
	}
	res, _ := s.Fallback.Analyze(ctx, req)
	return res
}

// tryProvider attempts one provider with bounded retry. Rate limits and
// configuration errors end the attempt immediately; configuration errors
// also remove the provider from future chains.
func (s *Service) tryProvider(ctx context.Context, name string, provider domainai.Provider, req domainai.Request) *analysis.Result {
	attempts := s.retryAttempts()
	for attempt := 1; attempt <= attempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout())
		res, err := provider.Analyze(callCtx, req)
		cancel()

		reached := err == nil ||
			(!errors.Is(err, domainai.ErrNotConfigured) && !errors.Is(err, domainai.ErrContentTooLarge))
		if reached && s.Costs != nil {
			s.Costs.Record(name, len(req.Content))
		}

		if err == nil {
			return res
		}
		if domainai.IsRateLimit(err) {
			log.Printf("provider %s rate limited, moving on: %v", name, err)
			return nil
		}
		if errors.Is(err, domainai.ErrNotConfigured) {
			log.Printf("provider %s not configured, disabling: %v", name, err)
			s.markSkipped(name)
			return nil
		}
		if !domainai.IsRetryable(err) {
			log.Printf("provider %s permanent failure: %v", name, err)
			return nil
		}
		log.Printf("provider %s attempt %d/%d failed: %v", name, attempt, attempts, err)
		if attempt < attempts {
			select {
			case <-time.After(s.retryDelay()):
			case <-ctx.Done():
				return nil
			}
		}
	}
	return nil
}

// candidates resolves the chain for one request: an explicitly requested
// provider wins when known, otherwise the configured preference order.
func (s *Service) candidates(requested string) []string {
	if requested != "" && requested != s.Fallback.Name() {
		if _, ok := s.Providers[requested]; ok {
			return []string{requested}
		}
	}
	if requested == s.Fallback.Name() {
		return nil
	}
	return s.Order
}

func (s *Service) isSkipped(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skipped[name]
}

func (s *Service) markSkipped(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.skipped == nil {
		s.skipped = make(map[string]bool)
	}
	s.skipped[name] = true
}

func newID(now time.Time) analysis.AnalysisID {
	short := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return analysis.AnalysisID(fmt.Sprintf("analysis_%d_%s", now.UnixMilli(), short))
}

// cacheKey covers every input the analyzers read: the URL feeds both the
// prompt and the fallback's domain classification, so it is part of the
// identity, not just the content.
func cacheKey(provider, url, content string) string {
	sum := sha256.Sum256([]byte(provider + "\n" + url + "\n" + content))
	return "contentlens:analysis:" + hex.EncodeToString(sum[:])
}

func (s *Service) cachedResult(ctx context.Context, provider, url, content string) *analysis.Result {
	if s.Cache == nil {
		return nil
	}
	data, ok, err := s.Cache.Get(ctx, cacheKey(provider, url, content))
	if err != nil {
		log.Printf("cache get failed: %v", err)
		return nil
	}
	if !ok {
		return nil
	}
	var res analysis.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil
	}
	return &res
}

func (s *Service) storeCache(ctx context.Context, provider, url, content string, res *analysis.Result) {
	if s.Cache == nil || res == nil {
		return
	}
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, cacheKey(provider, url, content), data, s.cacheTTL()); err != nil {
		log.Printf("cache set failed: %v", err)
	}
}

// Get returns one analysis or ErrNotFound.
func (s *Service) Get(ctx context.Context, id analysis.AnalysisID) (*analysis.Analysis, error) {
	a, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return a, nil
}

func (s *Service) Latest(ctx context.Context, limit int) ([]*analysis.Analysis, error) {
	return s.Repo.Latest(ctx, limit)
}

func (s *Service) Paginate(ctx context.Context, page, pageSize int) ([]*analysis.Analysis, error) {
	return s.Repo.Paginate(ctx, page, pageSize)
}

func (s *Service) Delete(ctx context.Context, id analysis.AnalysisID) error {
	a, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.Repo.Delete(ctx, id)
}

func (s *Service) Summary(ctx context.Context, days int) (analysis.Summary, error) {
	return s.Repo.Summary(ctx, days)
}

// ExportJSON uploads the stored record as an indented JSON document and
// returns its public URL.
func (s *Service) ExportJSON(ctx context.Context, id analysis.AnalysisID) (string, error) {
	if s.Exports == nil {
		return "", ErrExportUnavailable
	}
	a, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding export: %w", err)
	}
	return s.Exports.PutJSON(ctx, fmt.Sprintf("exports/%s.json", a.ID), data)
}

// ProviderInfo is the providers endpoint payload.
type ProviderInfo struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Available    bool                  `json:"available"`
	Capabilities domainai.Capabilities `json:"capabilities"`
}

var displayNames = map[string]string{
	"openai":   "OpenAI",
	"gemini":   "Google Gemini",
	"claude":   "Anthropic Claude",
	"fallback": "Deterministic Fallback",
}

// ProviderStatus reports every configured provider plus the fallback.
func (s *Service) ProviderStatus(ctx context.Context) []ProviderInfo {
	infos := make([]ProviderInfo, 0, len(s.Order)+1)
	for _, name := range s.Order {
		p, ok := s.Providers[name]
		if !ok {
			continue
		}
		infos = append(infos, ProviderInfo{
			ID:           name,
			Name:         displayName(name),
			Available:    !s.isSkipped(name) && p.HealthCheck(ctx),
			Capabilities: p.Capabilities(),
		})
	}
	infos = append(infos, ProviderInfo{
		ID:           s.Fallback.Name(),
		Name:         displayName(s.Fallback.Name()),
		Available:    s.Fallback.HealthCheck(ctx),
		Capabilities: s.Fallback.Capabilities(),
	})
	return infos
}

func displayName(id string) string {
	if n, ok := displayNames[id]; ok {
		return n
	}
	return id
}

func (s *Service) retryAttempts() int {
	if s.RetryAttempts > 0 {
		return s.RetryAttempts
	}
	return defaultRetryAttempts
}

func (s *Service) retryDelay() time.Duration {
	if s.RetryDelay > 0 {
		return s.RetryDelay
	}
	return defaultRetryDelay
}

func (s *Service) callTimeout() time.Duration {
	if s.CallTimeout > 0 {
		return s.CallTimeout
	}
	return defaultCallTimeout
}

func (s *Service) maxContentChars() int {
	if s.MaxContentChars > 0 {
		return s.MaxContentChars
	}
	return defaultMaxContentChars
}

func (s *Service) cacheTTL() time.Duration {
	if s.CacheTTL > 0 {
		return s.CacheTTL
	}
	return defaultCacheTTL
}

func (s *Service) clock() application.Clock {
	if s.Clock != nil {
		return s.Clock
	}
	return application.SystemClock{}
}
