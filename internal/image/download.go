package imagepkg

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/youruser/crdeck/internal/cards"
)

// DefaultIconBase serves card art by RoyaleAPI key.
const DefaultIconBase = "https://raw.githubusercontent.com/RoyaleAPI/cr-api-assets/master/cards-75/"

const maxIconBytes = 4 << 20

// Downloader fetches card icons.
type Downloader struct {
	client   *http.Client
	iconBase string
}

// NewDownloader returns a Downloader with a per-request timeout.
func NewDownloader(iconBase string, timeout time.Duration) *Downloader {
	if iconBase == "" {
		iconBase = DefaultIconBase
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Downloader{
		client:   &http.Client{Timeout: timeout},
		iconBase: strings.TrimSuffix(iconBase, "/") + "/",
	}
}

// IconURL prefers the icon the source reported, then the asset by key, then by name slug.
func (d *Downloader) IconURL(c cards.Card) string {
	if c.IconURL != "" {
		return c.IconURL
	}
	key := c.Key
	if key == "" {
		key = cards.Slug(c.Name)
	}
	return d.iconBase + key + ".png"
}

// DownloadImage downloads an image from url and decodes it.
func (d *Downloader) DownloadImage(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: HTTP %d", url, resp.StatusCode)
	}
	img, err := imaging.Decode(io.LimitReader(resp.Body, maxIconBytes))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return img, nil
}
