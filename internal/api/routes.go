package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codyseavey/archimago/internal/api/handlers"
	"github.com/codyseavey/archimago/internal/catalog"
	"github.com/codyseavey/archimago/internal/commands"
	"github.com/codyseavey/archimago/internal/glossary"
)

// Services are the collaborators behind the HTTP API.
type Services struct {
	Store           *catalog.Store
	Decks           commands.DeckFetcher
	Terms           *glossary.Glossary
	Registry        *commands.Registry
	MaxOverlapDecks int
	AllowedOrigins  []string
}

func SetupRouter(svc Services) *gin.Engine {
	router := gin.Default()
	router.Use(RequestID(), Metrics())

	// CORS configuration - allow configured origins
	config := cors.DefaultConfig()
	config.AllowOrigins = svc.AllowedOrigins
	if len(config.AllowOrigins) == 0 {
		config.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.ExposeHeaders = []string{RequestIDHeader}
	config.AllowCredentials = false // Explicitly set
	router.Use(cors.New(config))

	// Initialize handlers
	cardHandler := handlers.NewCardHandler(svc.Store)
	deckHandler := handlers.NewDeckHandler(svc.Decks, svc.MaxOverlapDecks)
	termHandler := handlers.NewTermHandler(svc.Terms)
	commandHandler := handlers.NewCommandHandler(svc.Registry)
	catalogHandler := handlers.NewCatalogHandler(svc.Store)

	// API routes
	api := router.Group("/api")
	{
		// Card routes
		cards := api.Group("/cards")
		{
			cards.GET("/search", cardHandler.SearchCards)
			cards.GET("/:name", cardHandler.GetCard)
			cards.GET("/:name/image", cardHandler.GetCardImage)
		}

		// Deck routes
		api.GET("/decks/:id", deckHandler.GetDeck)
		api.GET("/overlap", deckHandler.GetOverlap)

		// Glossary routes
		api.GET("/terms/:name", termHandler.GetTerm)

		// Chat command routes
		api.POST("/commands", commandHandler.RunCommand)

		// Catalog routes
		catalogRoutes := api.Group("/catalog")
		{
			catalogRoutes.GET("/status", catalogHandler.GetStatus)
			catalogRoutes.POST("/refresh", catalogHandler.Refresh)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		status := "ok"
		if svc.Store.Current() == nil {
			status = "loading"
		}
		c.JSON(200, gin.H{"status": status})
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router
}
