package models

import "github.com/Masterminds/semver/v3"

// Asset is one downloadable file attached to a release
type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
}

// Release is the latest published release of the launcher
type Release struct {
	Tag     string
	Version *semver.Version // nil when the tag is not a semantic version
	Assets  []Asset
}

// DisplayVersion returns the normalized version, falling back to the raw tag
func (r *Release) DisplayVersion() string {
	if r.Version != nil {
		return r.Version.String()
	}
	return r.Tag
}
