package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/youruser/crdeck/internal/cards"
	"github.com/youruser/crdeck/internal/deck"
	imagepkg "github.com/youruser/crdeck/internal/image"
)

// CardFetcher retrieves a fresh, normalized card list from upstream.
type CardFetcher interface {
	FetchCards(ctx context.Context) ([]cards.Card, error)
}

// Server holds handler dependencies. The base catalog is never mutated;
// live requests merge fetched cards into a new catalog.
type Server struct {
	Feed        CardFetcher
	BaseCatalog cards.Catalog
	Options     deck.Options
	Icons       *imagepkg.Downloader
	Limiter     *rate.Limiter
	Logger      *zap.Logger
}

// NewEngine builds a gin engine with middleware and routes registered.
func NewEngine(s *Server) *gin.Engine {
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(requestID(), accessLog(s.Logger), recovery(s.Logger))
	RegisterRoutes(r, s)
	return r
}

func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/cards", rateLimit(s.Limiter), s.cardsHandler)
		api.POST("/cards/filter", s.filterHandler)
		api.POST("/analyze", s.analyzeHandler)
		api.GET("/trophies/advice", trophyAdviceHandler)
		api.POST("/deck/export", s.exportHandler)
		api.POST("/deck/image", s.deckImageHandler)
		api.GET("/qr", qrHandler)
	}
}
