package verifier

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ionnetwork/dlpick/internal/models"
	"github.com/sassoftware/go-rpmutils"
)

// newTestKeyring creates a signing entity and writes its armored public key
// to a temp file
func newTestKeyring(t *testing.T) (*openpgp.Entity, string) {
	t.Helper()

	entity, err := openpgp.NewEntity("dlpick test", "", "test@example.com", nil)
	if err != nil {
		t.Fatalf("Failed to create entity: %v", err)
	}

	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PublicKeyType, nil)
	if err != nil {
		t.Fatalf("Failed to create armor writer: %v", err)
	}
	if err := entity.Serialize(w); err != nil {
		t.Fatalf("Failed to serialize key: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close armor writer: %v", err)
	}

	path := filepath.Join(t.TempDir(), "keyring.asc")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write keyring: %v", err)
	}
	return entity, path
}

func TestGPGVerifier(t *testing.T) {
	entity, keyPath := newTestKeyring(t)
	payload := []byte("installer bytes")

	var armored bytes.Buffer
	if err := openpgp.ArmoredDetachSign(&armored, entity, bytes.NewReader(payload), nil); err != nil {
		t.Fatalf("Failed to sign: %v", err)
	}
	var binary bytes.Buffer
	if err := openpgp.DetachSign(&binary, entity, bytes.NewReader(payload), nil); err != nil {
		t.Fatalf("Failed to sign: %v", err)
	}

	v, err := NewGPGVerifier(keyPath)
	if err != nil {
		t.Fatalf("NewGPGVerifier failed: %v", err)
	}

	if err := v.VerifyDetached(bytes.NewReader(payload), armored.Bytes()); err != nil {
		t.Errorf("Armored signature rejected: %v", err)
	}
	if err := v.VerifyDetached(bytes.NewReader(payload), binary.Bytes()); err != nil {
		t.Errorf("Binary signature rejected: %v", err)
	}
	if err := v.VerifyDetached(strings.NewReader("tampered"), armored.Bytes()); err == nil {
		t.Error("Expected tampered payload to fail verification")
	}
}

func TestGPGVerifierWrongKey(t *testing.T) {
	signer, _ := newTestKeyring(t)
	_, otherKeyPath := newTestKeyring(t)
	payload := []byte("installer bytes")

	var sig bytes.Buffer
	if err := openpgp.ArmoredDetachSign(&sig, signer, bytes.NewReader(payload), nil); err != nil {
		t.Fatalf("Failed to sign: %v", err)
	}

	v, err := NewGPGVerifier(otherKeyPath)
	if err != nil {
		t.Fatalf("NewGPGVerifier failed: %v", err)
	}
	if err := v.VerifyDetached(bytes.NewReader(payload), sig.Bytes()); err == nil {
		t.Error("Expected signature from unknown key to fail")
	}
}

func TestNewGPGVerifierErrors(t *testing.T) {
	if _, err := NewGPGVerifier(""); err == nil {
		t.Error("Expected error for empty path")
	}
	if _, err := NewGPGVerifier(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for missing keyring")
	}

	garbage := filepath.Join(t.TempDir(), "garbage")
	if err := os.WriteFile(garbage, []byte("not a key"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewGPGVerifier(garbage); err == nil {
		t.Error("Expected error for invalid keyring")
	}
}

const helloSHA256 = "5891b5b522d5df086d0ff0b110fbd9d21bb4fc7163af34d08286a2e846f6be03"

func TestExpectedSHA256(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    string
		wantErr bool
	}{
		{"listing", "# release sums\n" + helloSHA256 + "  Setup.exe\n" + strings.Repeat("a", 64) + "  App.dmg\n", helloSHA256, false},
		{"binary marker", strings.ToUpper(helloSHA256) + " *Setup.exe\n", helloSHA256, false},
		{"bare digest", helloSHA256 + "\n", helloSHA256, false},
		{"other file only", helloSHA256 + "  Other.exe\n", "", true},
		{"short digest", "abc  Setup.exe\n", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpectedSHA256([]byte(tt.data), "Setup.exe")
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExpectedSHA256 = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVerifySHA256(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Setup.exe")
	if err := os.WriteFile(path, []byte("hello\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := VerifySHA256(path, strings.ToUpper(helloSHA256)); err != nil {
		t.Errorf("Expected match, got %v", err)
	}
	if err := VerifySHA256(path, strings.Repeat("0", 64)); err == nil {
		t.Error("Expected mismatch error")
	}
}

func TestFindSidecars(t *testing.T) {
	assets := []models.Asset{
		{Name: "SHA256SUMS"},
		{Name: "Setup.exe"},
		{Name: "Setup.exe.asc"},
		{Name: "App.dmg"},
		{Name: "App.dmg.sha256"},
	}

	setup := FindSidecars(assets, "Setup.exe")
	if setup.Signature == nil || setup.Signature.Name != "Setup.exe.asc" {
		t.Errorf("Signature = %+v, want Setup.exe.asc", setup.Signature)
	}
	if setup.Checksum == nil || setup.Checksum.Name != "SHA256SUMS" {
		t.Errorf("Checksum = %+v, want SHA256SUMS listing", setup.Checksum)
	}

	app := FindSidecars(assets, "App.dmg")
	if app.Signature != nil {
		t.Errorf("Unexpected signature %+v", app.Signature)
	}
	if app.Checksum == nil || app.Checksum.Name != "App.dmg.sha256" {
		t.Errorf("Checksum = %+v, want App.dmg.sha256", app.Checksum)
	}

	none := FindSidecars(nil, "Setup.exe")
	if none.Signature != nil || none.Checksum != nil {
		t.Errorf("Expected no sidecars, got %+v", none)
	}
}

// signTestRPM re-signs the fixture package with entity and writes the result
// to a temp file
func signTestRPM(t *testing.T, entity *openpgp.Entity) string {
	t.Helper()

	f, err := os.Open(filepath.Join("testdata", "simple-1.0.1-1.i386.rpm"))
	if err != nil {
		t.Fatalf("Failed to open fixture: %v", err)
	}
	defer f.Close()

	hdr, err := rpmutils.SignRpmStream(f, entity.PrivateKey, nil)
	if err != nil {
		t.Fatalf("Failed to sign rpm: %v", err)
	}
	sigHeader, err := hdr.DumpSignatureHeader(false)
	if err != nil {
		t.Fatalf("Failed to dump signature header: %v", err)
	}
	if _, err := f.Seek(int64(hdr.OriginalSignatureHeaderSize()), io.SeekStart); err != nil {
		t.Fatalf("Failed to seek fixture: %v", err)
	}
	rest, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}

	path := filepath.Join(t.TempDir(), "simple-1.0.1-1.i386.rpm")
	if err := os.WriteFile(path, append(sigHeader, rest...), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVerifyRPM(t *testing.T) {
	entity, keyPath := newTestKeyring(t)
	_, otherKeyPath := newTestKeyring(t)
	signed := signTestRPM(t, entity)

	v, err := NewGPGVerifier(keyPath)
	if err != nil {
		t.Fatalf("NewGPGVerifier failed: %v", err)
	}
	if err := v.VerifyRPM(signed); err != nil {
		t.Errorf("Signed rpm rejected: %v", err)
	}

	other, err := NewGPGVerifier(otherKeyPath)
	if err != nil {
		t.Fatalf("NewGPGVerifier failed: %v", err)
	}
	if err := other.VerifyRPM(signed); err == nil {
		t.Error("Expected rpm signed by an unknown key to fail")
	}

	notRPM := filepath.Join(t.TempDir(), "fake.rpm")
	if err := os.WriteFile(notRPM, []byte("not an rpm"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := v.VerifyRPM(notRPM); err == nil {
		t.Error("Expected non-rpm file to fail")
	}
	if err := v.VerifyRPM(filepath.Join(t.TempDir(), "missing.rpm")); err == nil {
		t.Error("Expected missing file to fail")
	}
}
