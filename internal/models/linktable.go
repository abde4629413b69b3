package models

// Entry is a single classified download
type Entry struct {
	FileName    string `json:"fileName"`
	DownloadURL string `json:"downloadUrl"`
}

// WindowsLinks holds the Windows installer slot
type WindowsLinks struct {
	Installer *Entry `json:"installer"`
}

// MacOSLinks holds macOS downloads keyed by CPU architecture
type MacOSLinks struct {
	ARM64 *Entry `json:"arm64"`
	X64   *Entry `json:"x64"`
}

// LinuxLinks holds Linux downloads keyed by package format
type LinuxLinks struct {
	AppImage *Entry `json:"appimage"`
	Flatpak  *Entry `json:"flatpak"`
	Tar      *Entry `json:"tar"`
}

// LinkTable is the result of classifying a release's assets by platform.
// A table is built by a single classification pass and is not modified
// afterwards.
type LinkTable struct {
	Windows WindowsLinks `json:"Windows"`
	MacOS   MacOSLinks   `json:"MacOS"`
	Linux   LinuxLinks   `json:"Linux"`
}

// Empty reports whether no slot is populated
func (t LinkTable) Empty() bool {
	return t.Windows.Installer == nil &&
		t.MacOS.ARM64 == nil && t.MacOS.X64 == nil &&
		t.Linux.AppImage == nil && t.Linux.Flatpak == nil && t.Linux.Tar == nil
}

// Format identifies how a release asset is classified by its file name
type Format int

const (
	FormatUnknown Format = iota
	FormatWindowsInstaller
	FormatMacImage
	FormatAppImage
	FormatFlatpak
	FormatTarball
	FormatDeb
	FormatRpm
)

// String returns the string representation of Format
func (f Format) String() string {
	switch f {
	case FormatWindowsInstaller:
		return "installer"
	case FormatMacImage:
		return "macos"
	case FormatAppImage:
		return "appimage"
	case FormatFlatpak:
		return "flatpak"
	case FormatTarball:
		return "tar"
	case FormatDeb:
		return "deb"
	case FormatRpm:
		return "rpm"
	default:
		return "unknown"
	}
}
