// Package classifier sorts release assets into per-platform download slots.
package classifier

import (
	"strings"

	"github.com/ionnetwork/dlpick/internal/models"
	"github.com/sirupsen/logrus"
)

// Classify builds a LinkTable from a release's assets in a single pass.
//
// Primary formats overwrite their slot when they repeat, so the last
// matching asset wins. A .deb only fills the appimage slot while it is
// empty, and an .rpm only while both appimage and flatpak are empty.
func Classify(assets []models.Asset) models.LinkTable {
	var table models.LinkTable

	for _, asset := range assets {
		entry := &models.Entry{
			FileName:    asset.Name,
			DownloadURL: asset.DownloadURL,
		}

		format := DetectFormat(asset.Name)
		switch format {
		case models.FormatWindowsInstaller:
			table.Windows.Installer = entry
		case models.FormatMacImage:
			if DetectMacArchitecture(asset.Name) == models.ArchARM64 {
				table.MacOS.ARM64 = entry
			} else {
				table.MacOS.X64 = entry
			}
		case models.FormatAppImage:
			table.Linux.AppImage = entry
		case models.FormatFlatpak:
			table.Linux.Flatpak = entry
		case models.FormatTarball:
			table.Linux.Tar = entry
		case models.FormatDeb:
			if table.Linux.AppImage == nil {
				table.Linux.AppImage = entry
			}
		case models.FormatRpm:
			if table.Linux.AppImage == nil && table.Linux.Flatpak == nil {
				table.Linux.AppImage = entry
			}
		default:
			logrus.Debugf("Ignoring asset with unrecognised format: %s", asset.Name)
			continue
		}

		logrus.Debugf("Classified %s as %s", asset.Name, format)
	}

	mirrorUniversalMac(&table.MacOS)

	return table
}

// mirrorUniversalMac points both architecture slots at the same image when
// the release ships a single macOS binary without an architecture token.
func mirrorUniversalMac(mac *models.MacOSLinks) {
	switch {
	case mac.ARM64 != nil && mac.X64 == nil:
		if isArchGeneric(mac.ARM64.FileName) {
			mirrored := *mac.ARM64
			mac.X64 = &mirrored
		}
	case mac.X64 != nil && mac.ARM64 == nil:
		if isArchGeneric(mac.X64.FileName) {
			mirrored := *mac.X64
			mac.ARM64 = &mirrored
		}
	}
}

func isArchGeneric(name string) bool {
	return !containsAny(strings.ToLower(name), macArchTokens)
}
