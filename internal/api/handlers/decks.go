package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/archimago/internal/commands"
	"github.com/codyseavey/archimago/internal/deck"
	"github.com/codyseavey/archimago/internal/format"
	"github.com/codyseavey/archimago/internal/models"
	"github.com/codyseavey/archimago/internal/services"
)

type DeckHandler struct {
	decks    commands.DeckFetcher
	maxDecks int
}

func NewDeckHandler(decks commands.DeckFetcher, maxDecks int) *DeckHandler {
	if maxDecks < 2 {
		maxDecks = commands.DefaultMaxOverlapDecks
	}
	return &DeckHandler{decks: decks, maxDecks: maxDecks}
}

// DeckResponse is a deck with its rendered listing.
type DeckResponse struct {
	ID   string      `json:"id"`
	Deck models.Deck `json:"deck"`
	Text string      `json:"text"`
}

// OverlapResponse is the shared cards of a group of decks.
type OverlapResponse struct {
	IDs     []string    `json:"ids"`
	Overlap models.Deck `json:"overlap"`
	Text    string      `json:"text"`
}

func (h *DeckHandler) GetDeck(c *gin.Context) {
	id := c.Param("id")
	includeMaybe := c.Query("maybe") == "true"

	d, err := h.decks.FetchDeck(c.Request.Context(), id, includeMaybe)
	if err != nil {
		log.Printf("Failed to load deck %s: %v", id, err)
		c.JSON(deckErrorStatus(err), gin.H{"error": "failed to load deck", "id": id})
		return
	}

	c.JSON(http.StatusOK, DeckResponse{
		ID:   id,
		Deck: d,
		Text: format.Deck(d) + format.CardCounts(d),
	})
}

func (h *DeckHandler) GetOverlap(c *gin.Context) {
	var ids []string
	for _, id := range strings.Split(c.Query("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	if len(ids) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least 2 deck ids are required"})
		return
	}
	if len(ids) > h.maxDecks {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many deck ids", "max": h.maxDecks})
		return
	}

	decks, err := h.decks.FetchDecks(c.Request.Context(), ids, false)
	if err != nil {
		log.Printf("Failed to load decks for overlap: %v", err)
		resp := gin.H{"error": "failed to load deck"}
		var deckErr *services.DeckError
		if errors.As(err, &deckErr) {
			resp["id"] = deckErr.ID
		}
		c.JSON(deckErrorStatus(err), resp)
		return
	}

	overlap, err := deck.Overlap(decks...)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, OverlapResponse{
		IDs:     ids,
		Overlap: overlap,
		Text:    commands.OverlapText(overlap),
	})
}

func deckErrorStatus(err error) int {
	if errors.Is(err, services.ErrDeckUnavailable) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
