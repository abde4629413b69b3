package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/ionnetwork/dlpick/internal/models"
)

// ProjectSource supplies the project distribution feed's server entries.
// Entries are relayed untouched.
type ProjectSource interface {
	FetchProjects(ctx context.Context) ([]json.RawMessage, error)
}

// FeedSource reads the distribution feed document directly
type FeedSource struct {
	url   string
	fetch *fetcher
}

// NewFeedSource creates a source for the feed at config.FeedURL
func NewFeedSource(config *models.Config) *FeedSource {
	return &FeedSource{
		url:   config.FeedURL,
		fetch: newFetcher(config.Timeout, config.UserAgent),
	}
}

// FetchProjects returns the feed's servers array. A feed without servers
// yields an empty list.
func (s *FeedSource) FetchProjects(ctx context.Context) ([]json.RawMessage, error) {
	data, err := s.fetch.get(ctx, s.url, "application/json")
	if err != nil {
		return nil, err
	}

	var feed struct {
		Servers []json.RawMessage `json:"servers"`
	}
	if err := decodeJSON(data, &feed); err != nil {
		return nil, models.NewDataError(s.url, fmt.Errorf("invalid feed JSON: %w", err))
	}
	if feed.Servers == nil {
		return []json.RawMessage{}, nil
	}
	return feed.Servers, nil
}

// RelayProjectsSource reads the feed through a dlpick relay's /api/projects
type RelayProjectsSource struct {
	url   string
	fetch *fetcher
}

// NewRelayProjectsSource creates a source for {relay}/api/projects
func NewRelayProjectsSource(config *models.Config) *RelayProjectsSource {
	return &RelayProjectsSource{
		url:   joinURL(config.RelayURL, "api", "projects"),
		fetch: newFetcher(config.Timeout, config.UserAgent),
	}
}

// FetchProjects returns the relayed array. A relay answering with an error
// object is a DataError carrying the relay's message.
func (s *RelayProjectsSource) FetchProjects(ctx context.Context) ([]json.RawMessage, error) {
	data, err := s.fetch.get(ctx, s.url, "application/json")
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var projects []json.RawMessage
		if err := decodeJSON(trimmed, &projects); err != nil {
			return nil, models.NewDataError(s.url, fmt.Errorf("invalid projects JSON: %w", err))
		}
		return projects, nil
	}

	var failure struct {
		Error string `json:"error"`
	}
	if err := decodeJSON(trimmed, &failure); err != nil {
		return nil, models.NewDataError(s.url, fmt.Errorf("invalid projects JSON: %w", err))
	}
	if failure.Error != "" {
		return nil, models.NewDataError(s.url, fmt.Errorf("%s", failure.Error))
	}
	return nil, models.NewDataError(s.url, fmt.Errorf("expected a projects array"))
}

// NewProjectSource builds the project source for config: the relay when
// configured, the feed otherwise
func NewProjectSource(config *models.Config) ProjectSource {
	if config.RelayURL != "" {
		return NewRelayProjectsSource(config)
	}
	return NewFeedSource(config)
}
