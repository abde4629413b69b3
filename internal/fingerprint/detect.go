// Package fingerprint derives a coarse OS and CPU profile from the
// user-agent and platform strings a client reports.
package fingerprint

import (
	"strings"

	"github.com/ionnetwork/dlpick/internal/models"
)

// DefaultMacArchitecture is assumed for macOS clients that give no
// architecture hint. This is a guess biased toward current hardware, not a
// measurement.
const DefaultMacArchitecture = models.ArchARM64

// Tokens that identify a Linux desktop in either input string
var linuxTokens = []string{
	"linux", "x11", "ubuntu", "debian", "fedora",
	"arch", "manjaro", "opensuse", "centos", "rhel",
}

// Detect classifies a client from its user-agent and platform strings.
// Both inputs may be empty, which yields an unknown OS.
func Detect(userAgent, platform string) models.Fingerprint {
	ua := strings.ToLower(userAgent)
	pf := strings.ToLower(platform)

	fp := models.Fingerprint{
		OS:           detectOS(ua, pf),
		Architecture: models.ArchUnknown,
	}

	switch fp.OS {
	case models.OSMacOS:
		fp.Architecture = detectMacArchitecture(ua, pf)
		fp.AppleSilicon = fp.Architecture == models.ArchARM64
	case models.OSWindows, models.OSLinux:
		fp.Architecture = detectArchitecture(ua, pf)
	}

	return fp
}

func detectOS(ua, pf string) models.OS {
	switch {
	case strings.Contains(pf, "win") || strings.Contains(ua, "windows"):
		return models.OSWindows
	case strings.Contains(pf, "mac") || strings.Contains(ua, "mac os") || strings.Contains(ua, "macos"):
		return models.OSMacOS
	case containsAny(pf, linuxTokens) || containsAny(ua, linuxTokens):
		return models.OSLinux
	case strings.Contains(ua, "android"):
		return models.OSAndroid
	case containsAny(ua, []string{"iphone", "ipad", "ipod"}):
		return models.OSIOS
	default:
		return models.OSUnknown
	}
}

func detectMacArchitecture(ua, pf string) models.Architecture {
	switch {
	case strings.Contains(ua, "intel") || strings.Contains(pf, "intel"):
		return models.ArchX64
	case strings.Contains(ua, "arm") || strings.Contains(ua, "apple silicon"):
		return models.ArchARM64
	default:
		return DefaultMacArchitecture
	}
}

func detectArchitecture(ua, pf string) models.Architecture {
	switch {
	case containsAny(pf, []string{"x86_64", "x64"}) || strings.Contains(ua, "x64") || strings.Contains(ua, "x86_64"):
		return models.ArchX64
	case strings.Contains(pf, "arm") || strings.Contains(ua, "arm"):
		return models.ArchARM64
	case strings.Contains(pf, "x86") || strings.Contains(ua, "x86"):
		return models.ArchX86
	default:
		return models.ArchUnknown
	}
}

func containsAny(s string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}
