package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/codyseavey/archimago/internal/models"
)

const deckPage = `<html><body>
<h1>Fire Deck</h1>
<table>
  <thead><tr><th>Avatar (1)</th></tr></thead>
  <tbody><tr><td>1</td><td>Sorcerer</td></tr></tbody>
</table>
<table>
  <thead><tr><th>Spell (3)</th></tr></thead>
  <tbody>
    <tr><td>2</td><td><span>Lightning   Bolt</span><div>3</div></td></tr>
    <tr><td>1</td><td>Flare</td></tr>
  </tbody>
</table>
</body></html>`

const faqPage = `<html><head>
<script id="__NEXT_DATA__" type="application/json">
{"props":{"pageProps":{"trpcState":{"json":{"queries":[{"state":{"data":{"name":"Sly Fox","faqs":[
{"question":"Can it fly?","answer":"No."},
{"question":"Is it sly?","answer":"Yes."}
]}}}]}}}}}
</script></head><body></body></html>`

const missingCardPage = `<html><head>
<script id="__NEXT_DATA__" type="application/json">
{"props":{"pageProps":{"trpcState":{"json":{"queries":[{"state":{"data":null}}]}}}}}
</script></head><body></body></html>`

func newTestCuriosa(url string) *CuriosaService {
	return NewCuriosaService(CuriosaConfig{
		BaseURL:           url,
		RequestsPerSecond: 1000,
	})
}

func TestNewCuriosaService_Defaults(t *testing.T) {
	svc := NewCuriosaService(CuriosaConfig{})
	if svc.baseURL != curiosaBaseURL {
		t.Errorf("Expected base URL %s, got %s", curiosaBaseURL, svc.baseURL)
	}
	if svc.timeout != curiosaDefaultTimeout {
		t.Errorf("Expected timeout %v, got %v", curiosaDefaultTimeout, svc.timeout)
	}
}

func TestDeckURL(t *testing.T) {
	svc := newTestCuriosa("https://curiosa.io/")

	tests := []struct {
		input    string
		expected string
	}{
		{"clx123", "https://curiosa.io/decks/clx123"},
		{"https://curiosa.io/decks/clx123", "https://curiosa.io/decks/clx123"},
		{"https://curiosa.io/decks/clx123?tab=list#top", "https://curiosa.io/decks/clx123"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := svc.DeckURL(tt.input)
			if err != nil {
				t.Fatalf("DeckURL(%s) failed: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("DeckURL(%s) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDeckURL_Rejected(t *testing.T) {
	svc := newTestCuriosa("https://curiosa.io")

	inputs := []string{
		"http://curiosa.io/decks/clx123",
		"https://evil.example/decks/clx123",
		"https://curiosa.io.evil.example/decks/clx123",
		"https://user@curiosa.io/decks/clx123",
		"https://curiosa.io/admin",
		"https://curiosa.io/decks/../admin",
		"https://curiosa.io/decks/",
		"//curiosa.io/decks/clx123",
		"decks/clx123",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			if got, err := svc.DeckURL(input); !errors.Is(err, ErrDeckUnavailable) {
				t.Errorf("DeckURL(%s) = %q, %v; want ErrDeckUnavailable", input, got, err)
			}
		})
	}
}

func TestFetchDeck_ForeignHost(t *testing.T) {
	var requests atomic.Int32
	foreign := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte("<table><tr><td>Secret (1)</td></tr><tr><td>1</td><td>hunter2</td></tr></table>"))
	}))
	defer foreign.Close()

	svc := newTestCuriosa("https://curiosa.io")

	for _, ref := range []string{foreign.URL + "/admin", foreign.URL + "/decks/abc"} {
		d, err := svc.FetchDeck(context.Background(), ref, false)
		if !errors.Is(err, ErrDeckUnavailable) {
			t.Errorf("FetchDeck(%s) = %+v, %v; want ErrDeckUnavailable", ref, d, err)
		}
	}
	if n := requests.Load(); n != 0 {
		t.Errorf("Expected no requests to the foreign host, got %d", n)
	}
}

func TestExtractTables(t *testing.T) {
	tables, err := ExtractTables(strings.NewReader(deckPage))
	if err != nil {
		t.Fatalf("ExtractTables failed: %v", err)
	}

	expected := []string{
		"Avatar (1)\n1Sorcerer",
		"Spell (3)\n2Lightning Bolt\n3\n1Flare",
	}
	if len(tables) != len(expected) {
		t.Fatalf("Expected %d tables, got %d: %q", len(expected), len(tables), tables)
	}
	for i := range expected {
		if tables[i] != expected[i] {
			t.Errorf("table %d = %q, want %q", i, tables[i], expected[i])
		}
	}
}

func TestFetchDeck(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.URL.Path != "/decks/abc" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(deckPage))
	}))
	defer server.Close()

	svc := newTestCuriosa(server.URL)

	d, err := svc.FetchDeck(context.Background(), "abc", false)
	if err != nil {
		t.Fatalf("FetchDeck failed: %v", err)
	}

	spells := d.Categories["Spell"]
	if len(spells) != 2 {
		t.Fatalf("Expected 2 spells, got %v", spells)
	}
	if spells[0] != (models.CardCount{Name: "Lightning Bolt", Count: 2}) {
		t.Errorf("Unexpected first spell: %+v", spells[0])
	}
	if d.Total("Avatar") != 1 {
		t.Errorf("Expected 1 avatar, got %d", d.Total("Avatar"))
	}

	// Second fetch is served from the cache
	if _, err := svc.FetchDeck(context.Background(), "abc", false); err != nil {
		t.Fatalf("cached FetchDeck failed: %v", err)
	}
	if _, err := svc.FetchDeck(context.Background(), server.URL+"/decks/abc", false); err != nil {
		t.Fatalf("cached FetchDeck by URL failed: %v", err)
	}
	if got := requests.Load(); got != 1 {
		t.Errorf("Expected 1 request to server, got %d", got)
	}
}

func TestFetchDeck_Unavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}},
		{"no tables", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html><body><p>Deck is private</p></body></html>"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			svc := newTestCuriosa(server.URL)
			_, err := svc.FetchDeck(context.Background(), "abc", false)
			if !errors.Is(err, ErrDeckUnavailable) {
				t.Errorf("Expected ErrDeckUnavailable, got %v", err)
			}
		})
	}
}

func TestFetchDecks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/decks/broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(deckPage))
	}))
	defer server.Close()

	svc := newTestCuriosa(server.URL)

	decks, err := svc.FetchDecks(context.Background(), []string{"a", "b"}, false)
	if err != nil {
		t.Fatalf("FetchDecks failed: %v", err)
	}
	if len(decks) != 2 || decks[1].Total("Spell") != 3 {
		t.Errorf("Unexpected decks: %+v", decks)
	}

	_, err = svc.FetchDecks(context.Background(), []string{"a", "broken"}, false)
	var deckErr *DeckError
	if !errors.As(err, &deckErr) {
		t.Fatalf("Expected DeckError, got %v", err)
	}
	if deckErr.ID != "broken" {
		t.Errorf("Expected failing id 'broken', got %s", deckErr.ID)
	}
	if !errors.Is(err, ErrDeckUnavailable) {
		t.Errorf("Expected ErrDeckUnavailable in chain, got %v", err)
	}
}

func TestFetchFAQ(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cards/sly_fox":
			_, _ = w.Write([]byte(faqPage))
		case "/cards/nothing":
			_, _ = w.Write([]byte(missingCardPage))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	svc := newTestCuriosa(server.URL)

	faqs, err := svc.FetchFAQ(context.Background(), "sly_fox")
	if err != nil {
		t.Fatalf("FetchFAQ failed: %v", err)
	}
	if len(faqs) != 2 {
		t.Fatalf("Expected 2 FAQ entries, got %d", len(faqs))
	}
	if faqs[0].Question != "Can it fly?" || faqs[0].Answer != "No." {
		t.Errorf("Unexpected first entry: %+v", faqs[0])
	}

	for _, name := range []string{"nothing", "unknown"} {
		_, err := svc.FetchFAQ(context.Background(), name)
		if !errors.Is(err, ErrCardNotFound) {
			t.Errorf("FetchFAQ(%s): expected ErrCardNotFound, got %v", name, err)
		}
	}
}

func TestExtractFAQ_NoEntries(t *testing.T) {
	page := `<script id="__NEXT_DATA__">{"props":{"pageProps":{"trpcState":{"json":{"queries":[{"state":{"data":{"name":"x"}}}]}}}}}</script>`
	faqs, err := ExtractFAQ(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ExtractFAQ failed: %v", err)
	}
	if faqs == nil || len(faqs) != 0 {
		t.Errorf("Expected empty non-nil entries, got %v", faqs)
	}
}
