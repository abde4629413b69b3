package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/ionnetwork/dlpick/internal/models"
	"github.com/sirupsen/logrus"
)

// AssetSource supplies the latest release and its assets
type AssetSource interface {
	// FetchRelease returns the latest release. Errors are NetworkErrors or
	// DataErrors.
	FetchRelease(ctx context.Context) (*models.Release, error)

	// Name identifies the source in logs and errors
	Name() string
}

// ReleasePayload is the JSON shape of a release as served by GitHub and by
// the dlpick relay
type ReleasePayload struct {
	TagName string          `json:"tag_name"`
	Assets  *[]models.Asset `json:"assets"`
}

// GitHubSource fetches the latest release from the GitHub REST API
type GitHubSource struct {
	apiURL string
	owner  string
	repo   string
	fetch  *fetcher
}

// NewGitHubSource creates a source for owner/repo on the API at apiURL
func NewGitHubSource(config *models.Config) *GitHubSource {
	return &GitHubSource{
		apiURL: config.APIURL,
		owner:  config.Owner,
		repo:   config.Repo,
		fetch:  newFetcher(config.Timeout, config.UserAgent),
	}
}

// Name returns owner/repo
func (s *GitHubSource) Name() string {
	return fmt.Sprintf("github:%s/%s", s.owner, s.repo)
}

// FetchRelease fetches /repos/{owner}/{repo}/releases/latest
func (s *GitHubSource) FetchRelease(ctx context.Context) (*models.Release, error) {
	url := joinURL(s.apiURL, "repos", s.owner, s.repo, "releases", "latest")

	data, err := s.fetch.get(ctx, url, "application/vnd.github+json")
	if err != nil {
		return nil, err
	}

	return ParseRelease(url, data)
}

// RelaySource fetches the latest release from a dlpick relay server
type RelaySource struct {
	baseURL string
	fetch   *fetcher
}

// NewRelaySource creates a source reading {relay}/api/release
func NewRelaySource(config *models.Config) *RelaySource {
	return &RelaySource{
		baseURL: config.RelayURL,
		fetch:   newFetcher(config.Timeout, config.UserAgent),
	}
}

// Name returns the relay base URL
func (s *RelaySource) Name() string {
	return "relay:" + s.baseURL
}

// FetchRelease fetches /api/release from the relay
func (s *RelaySource) FetchRelease(ctx context.Context) (*models.Release, error) {
	url := joinURL(s.baseURL, "api", "release")

	data, err := s.fetch.get(ctx, url, "application/json")
	if err != nil {
		return nil, err
	}

	return ParseRelease(url, data)
}

// ParseRelease decodes a release payload. A payload without an assets array
// is a DataError.
func ParseRelease(origin string, data []byte) (*models.Release, error) {
	var payload ReleasePayload
	if err := decodeJSON(data, &payload); err != nil {
		return nil, models.NewDataError(origin, fmt.Errorf("invalid release JSON: %w", err))
	}
	if payload.Assets == nil {
		return nil, models.NewDataError(origin, fmt.Errorf("release has no assets"))
	}

	release := &models.Release{
		Tag:    payload.TagName,
		Assets: *payload.Assets,
	}

	if payload.TagName != "" {
		version, err := semver.NewVersion(payload.TagName)
		if err != nil {
			logrus.Debugf("Release tag %q is not a semantic version: %v", payload.TagName, err)
		} else {
			release.Version = version
		}
	}

	return release, nil
}

// FirstOf tries each source in order and returns the first successful
// release. It is not a reconciliation: later sources are only consulted when
// earlier ones fail.
type FirstOf []AssetSource

// Name lists the chained sources
func (c FirstOf) Name() string {
	names := ""
	for i, s := range c {
		if i > 0 {
			names += ","
		}
		names += s.Name()
	}
	return names
}

// FetchRelease returns the first release fetched without error, or the
// last error when every source fails
func (c FirstOf) FetchRelease(ctx context.Context) (*models.Release, error) {
	var lastErr error
	for _, s := range c {
		release, err := s.FetchRelease(ctx)
		if err == nil {
			return release, nil
		}
		logrus.Warnf("Release source %s failed: %v", s.Name(), err)
		lastErr = err
	}
	if lastErr == nil {
		lastErr = models.NewNetworkError("", fmt.Errorf("no release source configured"))
	}
	return nil, lastErr
}

// NewAssetSource builds the asset source for config. With a relay URL the
// relay is tried first and GitHub second.
func NewAssetSource(config *models.Config) AssetSource {
	github := NewGitHubSource(config)
	if config.RelayURL == "" {
		return github
	}
	return FirstOf{NewRelaySource(config), github}
}

func decodeJSON(data []byte, v interface{}) error {
	return json.NewDecoder(bytes.NewReader(data)).Decode(v)
}
