package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/archimago/internal/format"
	"github.com/codyseavey/archimago/internal/glossary"
	"github.com/codyseavey/archimago/internal/names"
)

type TermHandler struct {
	terms *glossary.Glossary
}

func NewTermHandler(terms *glossary.Glossary) *TermHandler {
	return &TermHandler{terms: terms}
}

func (h *TermHandler) GetTerm(c *gin.Context) {
	if h.terms == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "glossary not loaded"})
		return
	}

	key := names.Normalize(c.Param("name"))
	if term, ok := h.terms.Lookup(key); ok {
		c.JSON(http.StatusOK, term)
		return
	}

	resp := gin.H{"error": "term not found", "query": key}
	if suggestion, found := format.SuggestWord(key, h.terms.Index()); found {
		resp["suggestion"] = suggestion
	}
	c.JSON(http.StatusNotFound, resp)
}
