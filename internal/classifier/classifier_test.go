package classifier

import (
	"reflect"
	"testing"

	"github.com/ionnetwork/dlpick/internal/models"
)

func asset(name string) models.Asset {
	return models.Asset{
		Name:        name,
		DownloadURL: "https://example.com/download/" + name,
	}
}

func TestClassifyEmpty(t *testing.T) {
	table := Classify(nil)
	if !table.Empty() {
		t.Errorf("Expected empty table, got %+v", table)
	}

	table = Classify([]models.Asset{})
	if !table.Empty() {
		t.Errorf("Expected empty table for empty slice, got %+v", table)
	}
}

func TestClassifyIgnoresUnknownSuffixes(t *testing.T) {
	table := Classify([]models.Asset{
		asset("checksums.txt"),
		asset("launcher.zip"),
		asset("launcher.exe.sig"),
	})
	if !table.Empty() {
		t.Errorf("Expected unknown assets to be ignored, got %+v", table)
	}
}

func TestClassifyWindowsLastWins(t *testing.T) {
	table := Classify([]models.Asset{
		asset("Launcher-Setup.exe"),
		asset("Launcher.MSI"),
	})

	if table.Windows.Installer == nil {
		t.Fatal("Windows installer not classified")
	}
	if table.Windows.Installer.FileName != "Launcher.MSI" {
		t.Errorf("Windows installer = %s, want Launcher.MSI", table.Windows.Installer.FileName)
	}
	if table.Windows.Installer.DownloadURL != "https://example.com/download/Launcher.MSI" {
		t.Errorf("Unexpected download URL: %s", table.Windows.Installer.DownloadURL)
	}
}

func TestClassifyMacBothArchitectures(t *testing.T) {
	table := Classify([]models.Asset{
		asset("App-arm64.dmg"),
		asset("App-x64.dmg"),
	})

	if table.MacOS.ARM64 == nil || table.MacOS.ARM64.FileName != "App-arm64.dmg" {
		t.Errorf("arm64 slot = %+v, want App-arm64.dmg", table.MacOS.ARM64)
	}
	if table.MacOS.X64 == nil || table.MacOS.X64.FileName != "App-x64.dmg" {
		t.Errorf("x64 slot = %+v, want App-x64.dmg", table.MacOS.X64)
	}
}

func TestClassifyMacUniversalMirrored(t *testing.T) {
	table := Classify([]models.Asset{asset("App-Universal.dmg")})

	if table.MacOS.ARM64 == nil || table.MacOS.X64 == nil {
		t.Fatalf("Expected both macOS slots populated, got %+v", table.MacOS)
	}
	if table.MacOS.ARM64.FileName != "App-Universal.dmg" || table.MacOS.X64.FileName != "App-Universal.dmg" {
		t.Errorf("Expected both slots to point at App-Universal.dmg, got %+v / %+v",
			table.MacOS.ARM64, table.MacOS.X64)
	}
	if table.MacOS.ARM64 == table.MacOS.X64 {
		t.Errorf("Mirrored entries must not alias each other")
	}
}

func TestClassifyMacSingleArchNotMirrored(t *testing.T) {
	tests := []struct {
		name      string
		wantARM64 bool
		wantX64   bool
	}{
		{"App-Intel.dmg", false, true},
		{"App-x64.pkg", false, true},
		{"App-AppleSilicon.dmg", true, false},
		{"App-arm64.dmg", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := Classify([]models.Asset{asset(tt.name)})
			if (table.MacOS.ARM64 != nil) != tt.wantARM64 {
				t.Errorf("arm64 populated = %v, want %v", table.MacOS.ARM64 != nil, tt.wantARM64)
			}
			if (table.MacOS.X64 != nil) != tt.wantX64 {
				t.Errorf("x64 populated = %v, want %v", table.MacOS.X64 != nil, tt.wantX64)
			}
		})
	}
}

func TestClassifyMacHintWithoutArchTokenMirrored(t *testing.T) {
	// "x86_64" is an x64 hint but not one of the tokens that block mirroring
	table := Classify([]models.Asset{asset("App-x86_64.dmg")})

	if table.MacOS.X64 == nil || table.MacOS.ARM64 == nil {
		t.Fatalf("Expected both slots populated, got %+v", table.MacOS)
	}
}

func TestClassifyLinuxPrimaryFormats(t *testing.T) {
	table := Classify([]models.Asset{
		asset("launcher.AppImage"),
		asset("launcher.flatpak"),
		asset("launcher-linux.tar.gz"),
		asset("launcher-linux.tar.xz"),
	})

	if table.Linux.AppImage == nil || table.Linux.AppImage.FileName != "launcher.AppImage" {
		t.Errorf("appimage slot = %+v", table.Linux.AppImage)
	}
	if table.Linux.Flatpak == nil || table.Linux.Flatpak.FileName != "launcher.flatpak" {
		t.Errorf("flatpak slot = %+v", table.Linux.Flatpak)
	}
	if table.Linux.Tar == nil || table.Linux.Tar.FileName != "launcher-linux.tar.xz" {
		t.Errorf("tar slot = %+v, want last tarball", table.Linux.Tar)
	}
}

func TestClassifyDebFallback(t *testing.T) {
	t.Run("ignored when appimage present", func(t *testing.T) {
		table := Classify([]models.Asset{
			asset("launcher.AppImage"),
			asset("launcher.deb"),
		})
		if table.Linux.AppImage == nil || table.Linux.AppImage.FileName != "launcher.AppImage" {
			t.Errorf("appimage slot = %+v, want launcher.AppImage", table.Linux.AppImage)
		}
	})

	t.Run("fills empty appimage", func(t *testing.T) {
		table := Classify([]models.Asset{asset("launcher.deb")})
		if table.Linux.AppImage == nil || table.Linux.AppImage.FileName != "launcher.deb" {
			t.Errorf("appimage slot = %+v, want launcher.deb", table.Linux.AppImage)
		}
	})

	t.Run("overwritten by later appimage", func(t *testing.T) {
		table := Classify([]models.Asset{
			asset("launcher.deb"),
			asset("launcher.AppImage"),
		})
		if table.Linux.AppImage == nil || table.Linux.AppImage.FileName != "launcher.AppImage" {
			t.Errorf("appimage slot = %+v, want launcher.AppImage", table.Linux.AppImage)
		}
	})
}

func TestClassifyRpmFallback(t *testing.T) {
	tests := []struct {
		name   string
		assets []string
		want   string
	}{
		{"alone", []string{"launcher.rpm"}, "launcher.rpm"},
		{"after flatpak", []string{"launcher.flatpak", "launcher.rpm"}, ""},
		{"after deb", []string{"launcher.deb", "launcher.rpm"}, "launcher.deb"},
		{"before deb", []string{"launcher.rpm", "launcher.deb"}, "launcher.rpm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var assets []models.Asset
			for _, name := range tt.assets {
				assets = append(assets, asset(name))
			}

			table := Classify(assets)
			got := ""
			if table.Linux.AppImage != nil {
				got = table.Linux.AppImage.FileName
			}
			if got != tt.want {
				t.Errorf("appimage slot = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	assets := []models.Asset{
		asset("Launcher-Setup.exe"),
		asset("Launcher-arm64.dmg"),
		asset("Launcher.AppImage"),
		asset("launcher.deb"),
		asset("launcher.tar.gz"),
	}

	first := Classify(assets)
	second := Classify(assets)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Classify is not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		want models.Format
	}{
		{"Setup.EXE", models.FormatWindowsInstaller},
		{"setup.msi", models.FormatWindowsInstaller},
		{"App.dmg", models.FormatMacImage},
		{"App.pkg", models.FormatMacImage},
		{"App.AppImage", models.FormatAppImage},
		{"app.flatpak", models.FormatFlatpak},
		{"app.tar.gz", models.FormatTarball},
		{"app.pkg.tar.xz", models.FormatTarball},
		{"app.deb", models.FormatDeb},
		{"app.rpm", models.FormatRpm},
		{"app.zip", models.FormatUnknown},
		{"", models.FormatUnknown},
	}

	for _, tt := range tests {
		if got := DetectFormat(tt.name); got != tt.want {
			t.Errorf("DetectFormat(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}
