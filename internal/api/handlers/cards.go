package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/archimago/internal/commands"
	"github.com/codyseavey/archimago/internal/format"
	"github.com/codyseavey/archimago/internal/models"
	"github.com/codyseavey/archimago/internal/names"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

type CardHandler struct {
	cards commands.SnapshotProvider
}

func NewCardHandler(cards commands.SnapshotProvider) *CardHandler {
	return &CardHandler{cards: cards}
}

// CardResponse is a card with its rendered forms.
type CardResponse struct {
	Card     models.Card `json:"card"`
	Text     string      `json:"text"`
	ImageURL string      `json:"image_url"`
}

func (h *CardHandler) SearchCards(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	limit := defaultSearchLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxSearchLimit)
	}

	snap := h.cards.Current()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "card catalog not loaded"})
		return
	}

	c.JSON(http.StatusOK, snap.Search(query, limit))
}

func (h *CardHandler) GetCard(c *gin.Context) {
	card, ok := h.lookup(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, CardResponse{
		Card:     card,
		Text:     format.Card(card),
		ImageURL: format.ImageURL(card),
	})
}

func (h *CardHandler) GetCardImage(c *gin.Context) {
	card, ok := h.lookup(c)
	if !ok {
		return
	}
	c.Redirect(http.StatusFound, format.ImageURL(card))
}

// lookup resolves the :name parameter, writing the error response on a miss.
func (h *CardHandler) lookup(c *gin.Context) (models.Card, bool) {
	snap := h.cards.Current()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "card catalog not loaded"})
		return models.Card{}, false
	}

	name := names.Normalize(c.Param("name"))
	card, ok := snap.Catalog.Lookup(name)
	if ok {
		return card, true
	}

	resp := gin.H{"error": "card not found", "query": name}
	if suggestion, found := format.SuggestWord(name, snap.Index); found {
		resp["suggestion"] = suggestion
	}
	c.JSON(http.StatusNotFound, resp)
	return models.Card{}, false
}
