package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/codyseavey/archimago/internal/deck"
	"github.com/codyseavey/archimago/internal/metrics"
	"github.com/codyseavey/archimago/internal/models"
)

const (
	curiosaBaseURL        = "https://curiosa.io"
	curiosaDefaultTimeout = 3 * time.Second
	curiosaUserAgent      = "archimago/1.0 (+https://curiosa.io)"
)

var (
	// ErrDeckUnavailable means a deck could not be fetched or contained no
	// tables. It is never reported as an empty deck.
	ErrDeckUnavailable = errors.New("deck unavailable")

	// ErrCardNotFound means curiosa.io has no page data for a card.
	ErrCardNotFound = errors.New("card not found")

	errPageNotFound = errors.New("page not found")
)

// CuriosaConfig configures CuriosaService. Zero values select defaults.
type CuriosaConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	CacheSize         int
	CacheTTL          time.Duration
}

// CuriosaService fetches deck listings and card FAQs from curiosa.io. It owns
// its HTTP client, limiter and cache; callers only ever receive parsed text.
type CuriosaService struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
	limiter *rate.Limiter
	tables  *expirable.LRU[string, []string] // deck URL -> raw table text
}

// NewCuriosaService creates a curiosa.io client.
func NewCuriosaService(cfg CuriosaConfig) *CuriosaService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = curiosaBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = curiosaDefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 2
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 128
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}

	return &CuriosaService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		tables:  expirable.NewLRU[string, []string](cfg.CacheSize, nil, cfg.CacheTTL),
	}
}

// DeckURL returns the deck page URL for a deck id. Values that already look
// like a URL (they contain a slash) must point at a deck page on the
// configured curiosa.io host.
func (s *CuriosaService) DeckURL(idOrURL string) (string, error) {
	if !strings.Contains(idOrURL, "/") {
		return s.baseURL + "/decks/" + url.PathEscape(idOrURL), nil
	}

	base, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base URL: %v", ErrDeckUnavailable, err)
	}
	u, err := url.Parse(idOrURL)
	if err != nil {
		return "", fmt.Errorf("%w: invalid deck URL: %v", ErrDeckUnavailable, err)
	}

	deckPath := path.Clean("/" + u.Path)
	prefix := strings.TrimRight(base.Path, "/") + "/decks/"
	if u.Scheme != base.Scheme || u.Host != base.Host || u.User != nil ||
		!strings.HasPrefix(deckPath, prefix) || len(deckPath) == len(prefix) {
		return "", fmt.Errorf("%w: %s is not a deck on %s", ErrDeckUnavailable, idOrURL, base.Host)
	}

	return (&url.URL{Scheme: base.Scheme, Host: base.Host, Path: deckPath}).String(), nil
}

// FetchDeck fetches and parses a deck by id or URL.
func (s *CuriosaService) FetchDeck(ctx context.Context, idOrURL string, includeMaybe bool) (models.Deck, error) {
	tables, err := s.FetchDeckTables(ctx, idOrURL)
	if err != nil {
		return models.Deck{}, err
	}

	d, stats := deck.ParseTablesWithStats(tables, includeMaybe)
	if stats.Dropped > 0 {
		metrics.DeckLinesDropped.Add(float64(stats.Dropped))
		log.Printf("Warning: dropped %d malformed lines from deck %s", stats.Dropped, idOrURL)
	}
	return d, nil
}

// FetchDecks fetches several decks concurrently, keeping their order. It fails
// if any deck is unavailable; the error names the first failing id.
func (s *CuriosaService) FetchDecks(ctx context.Context, ids []string, includeMaybe bool) ([]models.Deck, error) {
	decks := make([]models.Deck, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			log.Printf("Requesting deck %d with id: %s", i+1, id)
			d, err := s.FetchDeck(gctx, id, includeMaybe)
			if err != nil {
				return &DeckError{ID: id, Err: err}
			}
			decks[i] = d
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return decks, nil
}

// DeckError ties a fetch failure to the deck id that caused it.
type DeckError struct {
	ID  string
	Err error
}

func (e *DeckError) Error() string {
	return fmt.Sprintf("deck %s: %v", e.ID, e.Err)
}

func (e *DeckError) Unwrap() error {
	return e.Err
}

// FetchDeckTables returns the text of every table on a deck page, given a
// deck id or URL.
func (s *CuriosaService) FetchDeckTables(ctx context.Context, idOrURL string) ([]string, error) {
	deckURL, err := s.DeckURL(idOrURL)
	if err != nil {
		metrics.CuriosaRequestsTotal.WithLabelValues("deck", "rejected").Inc()
		log.Printf("Warning: rejected deck reference %s: %v", idOrURL, err)
		return nil, err
	}

	if tables, ok := s.tables.Get(deckURL); ok {
		metrics.DeckCacheHits.Inc()
		return tables, nil
	}
	metrics.DeckCacheMisses.Inc()

	log.Printf("Retrieving deck information from URL: %s", deckURL)
	start := time.Now()
	body, err := s.get(ctx, deckURL)
	metrics.CuriosaRequestDuration.WithLabelValues("deck").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CuriosaRequestsTotal.WithLabelValues("deck", "failed").Inc()
		return nil, fmt.Errorf("%w: %v", ErrDeckUnavailable, err)
	}
	defer body.Close()

	tables, err := ExtractTables(body)
	if err != nil {
		metrics.CuriosaRequestsTotal.WithLabelValues("deck", "failed").Inc()
		return nil, fmt.Errorf("%w: %v", ErrDeckUnavailable, err)
	}
	if len(tables) == 0 {
		metrics.CuriosaRequestsTotal.WithLabelValues("deck", "not_found").Inc()
		log.Printf("Failed to retrieve element containing deck information for URL: %s", deckURL)
		return nil, fmt.Errorf("%w: no deck tables at %s", ErrDeckUnavailable, deckURL)
	}

	metrics.CuriosaRequestsTotal.WithLabelValues("deck", "success").Inc()
	s.tables.Add(deckURL, tables)
	return tables, nil
}

// FetchFAQ returns the FAQ entries curiosa.io lists for a card, identified by
// its canonical name.
func (s *CuriosaService) FetchFAQ(ctx context.Context, cardName string) ([]models.FAQ, error) {
	reqURL := s.baseURL + "/cards/" + url.PathEscape(cardName)

	start := time.Now()
	body, err := s.get(ctx, reqURL)
	metrics.CuriosaRequestDuration.WithLabelValues("faq").Observe(time.Since(start).Seconds())
	if errors.Is(err, errPageNotFound) {
		metrics.CuriosaRequestsTotal.WithLabelValues("faq", "not_found").Inc()
		log.Printf("Failed to load FAQ for card name: %s, card not found!", cardName)
		return nil, fmt.Errorf("failed to load FAQ for card %s: %w", cardName, ErrCardNotFound)
	}
	if err != nil {
		metrics.CuriosaRequestsTotal.WithLabelValues("faq", "failed").Inc()
		return nil, fmt.Errorf("failed to load FAQ for card %s: %w", cardName, err)
	}
	defer body.Close()

	faqs, err := ExtractFAQ(body)
	if err != nil {
		result := "failed"
		if errors.Is(err, ErrCardNotFound) {
			result = "not_found"
		}
		metrics.CuriosaRequestsTotal.WithLabelValues("faq", result).Inc()
		return nil, fmt.Errorf("failed to load FAQ for card %s: %w", cardName, err)
	}

	metrics.CuriosaRequestsTotal.WithLabelValues("faq", "success").Inc()
	return faqs, nil
}

// get waits for the limiter and performs a GET, returning the body of a 200
// response. The caller closes the body.
func (s *CuriosaService) get(ctx context.Context, reqURL string) (io.ReadCloser, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", curiosaUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		cancel()
		return nil, errPageNotFound
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("curiosa.io returned status %d", resp.StatusCode)
	}

	return &cancelBody{ReadCloser: resp.Body, cancel: cancel}, nil
}

// cancelBody releases the request context when the body is closed.
type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}
