package api

import (
	"errors"
	"image"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youruser/crdeck/internal/cards"
	"github.com/youruser/crdeck/internal/deck"
	"github.com/youruser/crdeck/internal/feed"
	imagepkg "github.com/youruser/crdeck/internal/image"
)

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// cardsHandler proxies the feed. Every call fetches; nothing is cached.
func (s *Server) cardsHandler(c *gin.Context) {
	if s.Feed == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cards", "detail": "no card feed configured"})
		return
	}
	cs, err := s.Feed.FetchCards(c.Request.Context())
	if err != nil {
		s.fetchError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cards": cs})
}

func (s *Server) fetchError(c *gin.Context, err error) {
	var upErr *feed.UpstreamError
	if errors.As(err, &upErr) {
		status := upErr.Status
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": "Upstream error", "detail": upErr.Body})
		return
	}
	s.Logger.Error("card fetch failed",
		zap.String("request_id", c.GetString("request_id")),
		zap.Error(err))
	detail := err.Error()
	var tErr *feed.TransportError
	if errors.As(err, &tErr) {
		detail = tErr.Message
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cards", "detail": detail})
}

// allowUpstream takes a token from the shared limiter. A nil limiter allows everything.
func (s *Server) allowUpstream() bool {
	return s.Limiter == nil || s.Limiter.Allow()
}

// catalog returns the base catalog, overlaid with live cards when requested.
// A failed or rate-limited fetch degrades to the base catalog.
func (s *Server) catalog(c *gin.Context, live bool) (cards.Catalog, string) {
	if !live || s.Feed == nil {
		return s.BaseCatalog, "default"
	}
	if !s.allowUpstream() {
		s.Logger.Warn("using default catalog, upstream rate limit reached",
			zap.String("request_id", c.GetString("request_id")))
		return s.BaseCatalog, "default"
	}
	cs, err := s.Feed.FetchCards(c.Request.Context())
	if err != nil {
		s.Logger.Warn("using default catalog, feed unavailable",
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
		return s.BaseCatalog, "default"
	}
	return s.BaseCatalog.Merge(cs), "live"
}

type analyzeRequest struct {
	Deck     []string `json:"deck"`
	Trophies int      `json:"trophies"`
	Live     bool     `json:"live"`
}

func (s *Server) analyzeHandler(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d := deck.Clean(req.Deck)
	if err := d.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, source := s.catalog(c, req.Live)
	opt := s.Options
	opt.Trophies = req.Trophies
	rep := deck.Analyze(d, cat, opt)
	c.JSON(http.StatusOK, gin.H{
		"catalog":           source,
		"averageElixirCost": rep.AverageElixirCost,
		"roleCounts":        rep.RoleCounts,
		"advisories":        rep.Advisories,
		"resolved":          rep.Resolved,
		"unresolved":        rep.Unresolved,
	})
}

func trophyAdviceHandler(c *gin.Context) {
	n, err := strconv.Atoi(c.Query("trophies"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "trophies must be an integer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trophies": n, "advice": deck.TrophyAdvice(n)})
}

type filterRequest struct {
	cards.FilterOptions
	Live bool `json:"live"`
}

func (s *Server) filterHandler(c *gin.Context) {
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, _ := s.catalog(c, req.Live)
	out := cards.Filter(cat.Cards(), req.FilterOptions)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "cards": out})
}

type deckRequest struct {
	Deck  []string `json:"deck"`
	Title string   `json:"title"`
	QR    bool     `json:"qr"`
	Icons bool     `json:"icons"`
	Live  bool     `json:"live"`
}

func (s *Server) bindDeck(c *gin.Context) (deckRequest, deck.Deck, bool) {
	var req deckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, nil, false
	}
	d := deck.Clean(req.Deck)
	if err := d.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, nil, false
	}
	return req, d, true
}

func (s *Server) exportHandler(c *gin.Context) {
	req, d, ok := s.bindDeck(c)
	if !ok {
		return
	}
	cat, _ := s.catalog(c, req.Live)
	resp := gin.H{"text": deck.ExportText(req.Title, d)}
	if link, ok := deck.ShareLink(d, cat); ok {
		resp["link"] = link
	}
	c.JSON(http.StatusOK, resp)
}

// qr endpoint returns a PNG of a QR for "text" query param
func qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		text = deck.ExportText("", deck.Default())
	}
	size := 400
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 && v <= 2048 {
		size = v
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// deckImageHandler renders the deck as a PNG; icons are fetched best-effort.
func (s *Server) deckImageHandler(c *gin.Context) {
	req, d, ok := s.bindDeck(c)
	if !ok {
		return
	}
	cat, _ := s.catalog(c, req.Live)
	icons := req.Icons && s.Icons != nil
	if icons && !s.allowUpstream() {
		s.Logger.Debug("skipping icons, upstream rate limit reached")
		icons = false
	}

	tiles := make([]imagepkg.Tile, 0, len(d))
	for _, name := range d {
		card, found := cat.Lookup(name)
		if !found {
			tiles = append(tiles, imagepkg.Tile{})
			continue
		}
		t := imagepkg.Tile{ElixirCost: card.ElixirCost, Roles: card.Roles}
		if icons {
			img, err := s.Icons.DownloadImage(c.Request.Context(), s.Icons.IconURL(card))
			if err == nil {
				t.Icon = img
			} else {
				s.Logger.Debug("icon download failed", zap.String("card", name), zap.Error(err))
			}
		}
		tiles = append(tiles, t)
	}

	var qr image.Image
	if req.QR {
		q, err := imagepkg.GenerateQRImage(deck.ExportText(req.Title, d), 400)
		if err == nil {
			qr = q
		}
	}
	b, err := imagepkg.EncodePNG(imagepkg.ComposeDeckImage(tiles, qr))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
