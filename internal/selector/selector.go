// Package selector picks the single best download for a client.
package selector

import "github.com/ionnetwork/dlpick/internal/models"

// Recommendation types
const (
	TypeInstaller = "installer"
	TypeARM64     = "arm64"
	TypeX64       = "x64"
	TypeAppImage  = "appimage"
	TypeFlatpak   = "flatpak"
)

// Select returns the best download in table for fp, or nil when nothing
// fits and the caller should fall back to a manual picker.
//
// Tarballs are never selected; they are only offered for manual download.
func Select(table models.LinkTable, fp models.Fingerprint) *models.Recommendation {
	switch fp.OS {
	case models.OSWindows:
		return recommend(models.PlatformWindows, table.Windows.Installer, TypeInstaller)

	case models.OSMacOS:
		if fp.AppleSilicon && present(table.MacOS.ARM64) {
			return recommend(models.PlatformMacOS, table.MacOS.ARM64, TypeARM64)
		}
		return recommend(models.PlatformMacOS, table.MacOS.X64, TypeX64)

	case models.OSLinux:
		if present(table.Linux.AppImage) {
			return recommend(models.PlatformLinux, table.Linux.AppImage, TypeAppImage)
		}
		return recommend(models.PlatformLinux, table.Linux.Flatpak, TypeFlatpak)
	}

	return nil
}

// present reports whether e can be offered; an entry without a URL counts
// as missing so the next candidate gets a chance.
func present(e *models.Entry) bool {
	return e != nil && e.DownloadURL != ""
}

func recommend(platform string, entry *models.Entry, kind string) *models.Recommendation {
	if !present(entry) {
		return nil
	}
	return &models.Recommendation{
		Platform: platform,
		URL:      entry.DownloadURL,
		FileName: entry.FileName,
		Type:     kind,
	}
}
