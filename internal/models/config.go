package models

import "time"

// Config contains configuration for fetching and recommending downloads
type Config struct {
	// Release source
	Owner    string `yaml:"owner"`
	Repo     string `yaml:"repo"`
	APIURL   string `yaml:"api_url"`   // GitHub API base URL
	RelayURL string `yaml:"relay_url"` // When set, assets and projects come from a dlpick relay instead

	// AssetsDir replaces the remote release with the files of a local directory
	AssetsDir string `yaml:"assets_dir"`

	// Project feed
	FeedURL string `yaml:"feed_url"`

	// HTTP
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`

	// Server
	Listen         string `yaml:"listen"`
	CopyrightOwner string `yaml:"copyright_owner"`
	CopyrightStart int    `yaml:"copyright_start"`

	// Download
	OutputDir   string `yaml:"output_dir"`
	Verify      bool   `yaml:"verify"`
	KeyringPath string `yaml:"keyring"` // OpenPGP public keyring used for signature checks
}
