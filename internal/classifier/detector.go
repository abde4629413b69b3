package classifier

import (
	"strings"

	"github.com/ionnetwork/dlpick/internal/models"
)

// Suffixes recognised per format, matched against the lower-cased file name
var (
	windowsSuffixes  = []string{".exe", ".msi"}
	macSuffixes      = []string{".dmg", ".pkg"}
	appImageSuffixes = []string{".appimage"}
	flatpakSuffixes  = []string{".flatpak"}
	tarballSuffixes  = []string{".tar.gz", ".tar.xz"}
	debSuffixes      = []string{".deb"}
	rpmSuffixes      = []string{".rpm"}
)

// Architecture hints found in macOS image names
var (
	macARM64Hints = []string{"arm64", "apple", "m1", "m2"}
	macX64Hints   = []string{"x64", "intel", "x86_64"}

	// A single macOS image whose name carries none of these is treated as a
	// universal binary.
	macArchTokens = []string{"arm64", "x64", "intel", "apple"}
)

// DetectFormat determines the format of a release asset from its file name
func DetectFormat(name string) models.Format {
	lower := strings.ToLower(name)

	switch {
	case hasAnySuffix(lower, windowsSuffixes):
		return models.FormatWindowsInstaller
	case hasAnySuffix(lower, macSuffixes):
		return models.FormatMacImage
	case hasAnySuffix(lower, appImageSuffixes):
		return models.FormatAppImage
	case hasAnySuffix(lower, flatpakSuffixes):
		return models.FormatFlatpak
	case hasAnySuffix(lower, tarballSuffixes):
		return models.FormatTarball
	case hasAnySuffix(lower, debSuffixes):
		return models.FormatDeb
	case hasAnySuffix(lower, rpmSuffixes):
		return models.FormatRpm
	}

	return models.FormatUnknown
}

// DetectMacArchitecture guesses the CPU architecture of a macOS image.
// Names without any hint default to x64.
func DetectMacArchitecture(name string) models.Architecture {
	lower := strings.ToLower(name)

	if containsAny(lower, macARM64Hints) {
		return models.ArchARM64
	}
	if containsAny(lower, macX64Hints) {
		return models.ArchX64
	}
	return models.ArchX64
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

func containsAny(s string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}
