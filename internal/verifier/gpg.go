package verifier

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/sirupsen/logrus"
)

// GPGVerifier checks detached OpenPGP signatures against a public keyring
type GPGVerifier struct {
	keyring openpgp.EntityList
}

// NewGPGVerifier creates a verifier from an armored or binary keyring file
func NewGPGVerifier(keyPath string) (*GPGVerifier, error) {
	if keyPath == "" {
		return nil, fmt.Errorf("keyring path is empty")
	}

	keyFile, err := os.Open(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	defer keyFile.Close()

	// Try to parse as armored keyring first
	entityList, err := openpgp.ReadArmoredKeyRing(keyFile)
	if err != nil {
		if _, seekErr := keyFile.Seek(0, io.SeekStart); seekErr != nil {
			return nil, fmt.Errorf("failed to rewind keyring: %w", seekErr)
		}
		entityList, err = openpgp.ReadKeyRing(keyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read keyring: %w", err)
		}
	}

	if len(entityList) == 0 {
		return nil, fmt.Errorf("no keys found in keyring")
	}

	return &GPGVerifier{keyring: entityList}, nil
}

// VerifyDetached checks signature over signed. Armored and binary
// signatures are both accepted.
func (v *GPGVerifier) VerifyDetached(signed io.Reader, signature []byte) error {
	var (
		signer *openpgp.Entity
		err    error
	)

	if bytes.HasPrefix(bytes.TrimSpace(signature), []byte("-----BEGIN")) {
		signer, err = openpgp.CheckArmoredDetachedSignature(v.keyring, signed, bytes.NewReader(signature), nil)
	} else {
		signer, err = openpgp.CheckDetachedSignature(v.keyring, signed, bytes.NewReader(signature), nil)
	}
	if err != nil {
		return fmt.Errorf("signature check failed: %w", err)
	}

	for name := range signer.Identities {
		logrus.Infof("Good signature from %s", name)
		break
	}
	return nil
}

// VerifyFile checks signature over the file at path
func (v *GPGVerifier) VerifyFile(path string, signature []byte) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return v.VerifyDetached(f, signature)
}
