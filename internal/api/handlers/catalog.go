package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/archimago/internal/catalog"
)

type CatalogHandler struct {
	store *catalog.Store
}

func NewCatalogHandler(store *catalog.Store) *CatalogHandler {
	return &CatalogHandler{store: store}
}

// CatalogStatus describes the active snapshot.
type CatalogStatus struct {
	Loaded     bool      `json:"loaded"`
	Cards      int       `json:"cards"`
	IndexNodes int       `json:"index_nodes"`
	LoadedAt   time.Time `json:"loaded_at,omitempty"`
}

func statusOf(snap *catalog.Snapshot) CatalogStatus {
	if snap == nil {
		return CatalogStatus{}
	}
	return CatalogStatus{
		Loaded:     true,
		Cards:      snap.Catalog.Len(),
		IndexNodes: snap.Index.Size(),
		LoadedAt:   snap.LoadedAt,
	}
}

func (h *CatalogHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, statusOf(h.store.Current()))
}

// Refresh rebuilds the catalog from its source. The previous snapshot stays
// active when the rebuild fails.
func (h *CatalogHandler) Refresh(c *gin.Context) {
	snap, err := h.store.Refresh(c.Request.Context())
	if err != nil {
		log.Printf("Manual catalog refresh failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, statusOf(snap))
}
