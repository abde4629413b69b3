// Package verifier checks downloaded installers against the signature and
// checksum files published alongside them.
package verifier

import (
	"strings"

	"github.com/ionnetwork/dlpick/internal/models"
)

// Release-wide checksum listings, matched case-insensitively
var checksumListings = []string{"sha256sums", "sha256sums.txt", "checksums.txt", "checksums.sha256"}

// Sidecars are the verification assets published for one file
type Sidecars struct {
	Signature *models.Asset
	Checksum  *models.Asset
}

// FindSidecars locates the signature and checksum assets for fileName.
// A per-file checksum is preferred over a release-wide listing.
func FindSidecars(assets []models.Asset, fileName string) Sidecars {
	var found Sidecars
	var listing *models.Asset

	for i := range assets {
		a := &assets[i]
		name := a.Name
		lower := strings.ToLower(name)

		switch {
		case name == fileName+".asc" || name == fileName+".sig":
			if found.Signature == nil {
				found.Signature = a
			}
		case name == fileName+".sha256" || name == fileName+".sha256sum":
			found.Checksum = a
		case listing == nil && isChecksumListing(lower):
			listing = a
		}
	}

	if found.Checksum == nil {
		found.Checksum = listing
	}
	return found
}

func isChecksumListing(lower string) bool {
	for _, name := range checksumListings {
		if lower == name {
			return true
		}
	}
	return false
}
