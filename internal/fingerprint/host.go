package fingerprint

import "runtime"

// HostSignals describes the machine dlpick runs on as a user-agent and
// platform pair, in the shape a browser would report them.
func HostSignals() (userAgent, platform string) {
	return hostSignals(runtime.GOOS, runtime.GOARCH)
}

func hostSignals(goos, goarch string) (string, string) {
	arch := goarch
	switch goarch {
	case "amd64":
		arch = "x86_64"
	case "386":
		arch = "x86"
	}

	switch goos {
	case "windows":
		ua := "dlpick (Windows NT; " + arch + ")"
		if goarch == "amd64" {
			ua = "dlpick (Windows NT; Win64; x64)"
		}
		return ua, "Win32"
	case "darwin":
		if goarch == "amd64" {
			return "dlpick (Macintosh; Intel Mac OS X)", "MacIntel"
		}
		return "dlpick (Macintosh; Apple Silicon Mac OS X)", "MacARM"
	case "linux":
		return "dlpick (X11; Linux " + arch + ")", "Linux " + arch
	default:
		return "dlpick (" + goos + "; " + arch + ")", goos
	}
}
