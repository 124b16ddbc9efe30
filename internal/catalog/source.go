package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/codyseavey/archimago/internal/models"
)

// DefaultCardsURL is the public Sorcery card API.
const DefaultCardsURL = "https://api.sorcerytcg.com/api/cards"

// Source supplies the full card collection.
type Source interface {
	LoadCards(ctx context.Context) ([]models.Card, error)
}

type rawCard struct {
	Name     string      `json:"name"`
	Guardian rawGuardian `json:"guardian"`
	Sets     []rawSet    `json:"sets"`
}

type rawGuardian struct {
	Rarity     string         `json:"rarity"`
	Type       string         `json:"type"`
	RulesText  string         `json:"rulesText"`
	Cost       *int           `json:"cost"`
	Attack     *int           `json:"attack"`
	Defence    *int           `json:"defence"`
	Life       *int           `json:"life"`
	Thresholds map[string]int `json:"thresholds"`
}

type rawSet struct {
	Name string `json:"name"`
}

// DecodeCards reads a JSON array of cards in the curiosa/Sorcery API layout.
// Cards without a name or without any set are skipped.
func DecodeCards(r io.Reader) ([]models.Card, error) {
	var raw []rawCard
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode cards: %w", err)
	}

	cards := make([]models.Card, 0, len(raw))
	for _, rc := range raw {
		if rc.Name == "" {
			continue
		}
		card := convertToCard(rc)
		if len(card.Sets) == 0 {
			log.Printf("Warning: skipping card %q with no sets", rc.Name)
			continue
		}
		cards = append(cards, card)
	}

	return cards, nil
}

func convertToCard(rc rawCard) models.Card {
	thresholds := make(models.Thresholds, len(models.Elements))
	for _, el := range models.Elements {
		if v := rc.Guardian.Thresholds[string(el)]; v > 0 {
			thresholds[el] = v
		}
	}

	sets := make([]string, 0, len(rc.Sets))
	for _, s := range rc.Sets {
		if s.Name != "" {
			sets = append(sets, s.Name)
		}
	}

	return models.Card{
		Name:       rc.Name,
		Rarity:     rc.Guardian.Rarity,
		Type:       rc.Guardian.Type,
		RulesText:  rc.Guardian.RulesText,
		Cost:       rc.Guardian.Cost,
		Attack:     rc.Guardian.Attack,
		Defence:    rc.Guardian.Defence,
		Life:       rc.Guardian.Life,
		Thresholds: thresholds,
		Sets:       sets,
	}
}

// FileSource loads cards from a JSON file on disk.
type FileSource struct {
	Path string
}

// LoadCards implements Source.
func (s FileSource) LoadCards(_ context.Context) ([]models.Card, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cards file %s: %w", s.Path, err)
	}
	defer f.Close()

	return DecodeCards(f)
}

// HTTPSource downloads cards from a JSON endpoint.
type HTTPSource struct {
	URL    string
	client *http.Client
}

// NewHTTPSource creates a source for url, defaulting to DefaultCardsURL.
func NewHTTPSource(url string) *HTTPSource {
	if url == "" {
		url = DefaultCardsURL
	}
	return &HTTPSource{
		URL: url,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// LoadCards implements Source.
func (s *HTTPSource) LoadCards(ctx context.Context) ([]models.Card, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download cards: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("card API returned status %d", resp.StatusCode)
	}

	return DecodeCards(resp.Body)
}

// FallbackSource tries each source in order and returns the first success.
type FallbackSource []Source

// LoadCards implements Source.
func (s FallbackSource) LoadCards(ctx context.Context) ([]models.Card, error) {
	var lastErr error
	for _, src := range s {
		cards, err := src.LoadCards(ctx)
		if err == nil {
			return cards, nil
		}
		log.Printf("Warning: card source failed: %v", err)
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no card sources configured")
	}
	return nil, lastErr
}
