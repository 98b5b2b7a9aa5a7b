package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/youruser/crdeck/internal/cards"
)

const (
	// DefaultOfficialURL is the authenticated Clash Royale API card list.
	DefaultOfficialURL = "https://api.clashroyale.com/v1/cards"
	// DefaultMirrorURL is the public RoyaleAPI data dump.
	DefaultMirrorURL = "https://raw.githubusercontent.com/RoyaleAPI/cr-api-data/master/json/cards.json"
	defaultTimeout   = 12 * time.Second
	maxBodyBytes     = 1 << 20
	maxCatalogBytes  = 32 << 20
)

// Config selects and reaches the card sources.
type Config struct {
	Token       string
	OfficialURL string
	MirrorURL   string
	Timeout     time.Duration
}

// Source is one upstream endpoint and the envelope it answers with.
type Source struct {
	Name  string
	URL   string
	Shape cards.Shape
	Token string
}

// Client fetches the card catalog from the official API or the public mirror.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
	maxBody    int64
}

// New creates a feed client. A nil logger disables logging.
func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.OfficialURL == "" {
		cfg.OfficialURL = DefaultOfficialURL
	}
	if cfg.MirrorURL == "" {
		cfg.MirrorURL = DefaultMirrorURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
		maxBody:    maxCatalogBytes,
	}
}

// Select picks the authenticated source when a token is configured, the mirror otherwise.
func (c *Client) Select() Source {
	if c.cfg.Token != "" {
		return Source{Name: "official", URL: c.cfg.OfficialURL, Shape: cards.ShapeItems, Token: c.cfg.Token}
	}
	return Source{Name: "fallback", URL: c.cfg.MirrorURL, Shape: cards.ShapeArray}
}

// FetchCards performs one request against the selected source and returns
// normalized, role-tagged cards. It does not retry or cache.
func (c *Client) FetchCards(ctx context.Context) ([]cards.Card, error) {
	src := c.Select()
	body, err := c.get(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("feed.FetchCards: %w", err)
	}
	raw, err := cards.DecodeEnvelope(src.Shape, body)
	if err != nil {
		return nil, fmt.Errorf("feed.FetchCards: %w", &TransportError{Message: err.Error(), Err: err})
	}
	cs := cards.ApplyTags(cards.Normalize(raw))
	c.logger.Debug("fetched cards",
		zap.String("source", src.Name),
		zap.Int("raw", len(raw)),
		zap.Int("cards", len(cs)))
	return cs, nil
}

func (c *Client) get(ctx context.Context, src Source) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, &TransportError{Message: fmt.Sprintf("create request: %v", err), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if src.Token != "" {
		req.Header.Set("Authorization", "Bearer "+src.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if readErr != nil {
			text = []byte(fmt.Sprintf("failed to read body: %v", readErr))
		}
		c.logger.Warn("upstream rejected request",
			zap.String("source", src.Name),
			zap.Int("status", resp.StatusCode))
		return nil, &UpstreamError{Source: src.Name, Status: resp.StatusCode, Body: string(text)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, &TransportError{Message: fmt.Sprintf("read body: %v", err), Err: err}
	}
	if int64(len(body)) > c.maxBody {
		return nil, &TransportError{Message: fmt.Sprintf("card list exceeds %d bytes", c.maxBody)}
	}
	return body, nil
}
