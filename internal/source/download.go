package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ionnetwork/dlpick/internal/models"
	"github.com/ionnetwork/dlpick/internal/utils"
	"github.com/sirupsen/logrus"
)

// Downloader streams release assets to disk
type Downloader struct {
	fetch *fetcher
}

// NewDownloader creates a downloader. Asset downloads are not bounded by the
// API timeout; only ctx cancels them.
func NewDownloader(config *models.Config) *Downloader {
	return &Downloader{fetch: newFetcher(0, config.UserAgent)}
}

// Download saves url to path and returns the number of bytes written
func (d *Downloader) Download(ctx context.Context, url, path string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, models.NewNetworkError(url, err)
	}
	req.Header.Set("User-Agent", d.fetch.userAgent)

	start := time.Now()
	resp, err := d.fetch.client.Do(req)
	if err != nil {
		return 0, models.NewNetworkError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, models.NewNetworkError(url, fmt.Errorf("HTTP error! status: %d", resp.StatusCode))
	}

	n, err := utils.WriteFileAtomic(path, resp.Body, 0755)
	if err != nil {
		return n, &models.DLError{Type: models.ErrFileOp, Source: path, Err: err}
	}

	logrus.Debugf("Downloaded %s (%d bytes) in %s", url, n, time.Since(start).Round(time.Millisecond))
	return n, nil
}

// Fetch returns a small asset such as a signature or checksum file in memory
func (d *Downloader) Fetch(ctx context.Context, url string) ([]byte, error) {
	return d.fetch.get(ctx, url, "")
}
