package models

// OS is the coarse operating system category of a client
type OS string

const (
	OSWindows OS = "windows"
	OSMacOS   OS = "macos"
	OSLinux   OS = "linux"
	OSAndroid OS = "android"
	OSIOS     OS = "ios"
	OSUnknown OS = "unknown"
)

// Architecture is the guessed CPU architecture of a client
type Architecture string

const (
	ArchX64     Architecture = "x64"
	ArchARM64   Architecture = "arm64"
	ArchX86     Architecture = "x86"
	ArchUnknown Architecture = "unknown"
)

// Platform names as shown to users and used in recommendations
const (
	PlatformWindows = "Windows"
	PlatformMacOS   = "MacOS"
	PlatformLinux   = "Linux"
)

// Fingerprint is the detected OS/architecture profile of a client
type Fingerprint struct {
	OS           OS           `json:"os"`
	Architecture Architecture `json:"architecture"`
	AppleSilicon bool         `json:"isAppleSilicon"`
}

// PlatformName maps the OS to the platform name used in link tables.
// Returns an empty string for platforms without desktop downloads.
func (f Fingerprint) PlatformName() string {
	switch f.OS {
	case OSWindows:
		return PlatformWindows
	case OSMacOS:
		return PlatformMacOS
	case OSLinux:
		return PlatformLinux
	default:
		return ""
	}
}

// Recommendation is the single best download for a fingerprint
type Recommendation struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	Type     string `json:"type"`
}
