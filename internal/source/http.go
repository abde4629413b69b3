package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ionnetwork/dlpick/internal/models"
	"github.com/ionnetwork/dlpick/internal/utils"
	"github.com/sirupsen/logrus"
)

// Maximum response body accepted from any endpoint
const maxBodySize = 16 << 20

// DefaultUserAgent is sent when the configuration names none
const DefaultUserAgent = "dlpick/1.0"

// fetcher performs single-attempt GET requests. It never retries.
type fetcher struct {
	client    *http.Client
	userAgent string
}

func newFetcher(timeout time.Duration, userAgent string) *fetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// get fetches url and returns the decoded body of a 2xx response. Transport
// failures and other statuses are NetworkErrors.
func (f *fetcher) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, models.NewNetworkError(url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept-Encoding", "gzip")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	logrus.Debugf("GET %s", url)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, models.NewNetworkError(url, err)
	}
	defer resp.Body.Close()

	body, err := utils.DecodeBody(resp.Body, resp.Header.Get("Content-Encoding"))
	if err != nil {
		return nil, models.NewDataError(url, fmt.Errorf("failed to decode body: %w", err))
	}
	defer body.Close()

	data, readErr := io.ReadAll(io.LimitReader(body, maxBodySize))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fmt.Sprintf("HTTP error! status: %d", resp.StatusCode)
		if detail := errorDetail(data); detail != "" {
			msg += " (" + detail + ")"
		}
		return nil, models.NewNetworkError(url, fmt.Errorf("%s", msg))
	}
	if readErr != nil {
		return nil, models.NewNetworkError(url, fmt.Errorf("failed to read body: %w", readErr))
	}

	return data, nil
}

// errorDetail extracts a short message from an error response body
func errorDetail(data []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := decodeJSON(data, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}

func joinURL(base string, parts ...string) string {
	u := strings.TrimRight(base, "/")
	for _, p := range parts {
		u += "/" + strings.Trim(p, "/")
	}
	return u
}
