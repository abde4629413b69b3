// Package scanner reads release assets from a local directory, such as a
// build output folder about to be published.
package scanner

import (
	"context"

	"github.com/ionnetwork/dlpick/internal/models"
)

// Scanner lists the files of a directory as release assets
type Scanner interface {
	// Scan recursively scans a directory for assets
	Scan(ctx context.Context, dir string) ([]models.Asset, error)
}
