package verifier

import (
	"fmt"
	"os"

	"github.com/sassoftware/go-rpmutils"
	"github.com/sirupsen/logrus"
)

// VerifyRPM checks the header and payload digests of the RPM at path and
// its embedded OpenPGP signatures against the keyring. An unsigned package
// is rejected.
func (v *GPGVerifier) VerifyRPM(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	hdr, sigs, err := rpmutils.Verify(f, v.keyring)
	if err != nil {
		return fmt.Errorf("rpm check failed: %w", err)
	}
	if len(sigs) == 0 {
		return fmt.Errorf("rpm %s carries no signature", path)
	}

	nevra, err := hdr.GetNEVRA()
	if err != nil {
		return fmt.Errorf("failed to read rpm header: %w", err)
	}
	signer := sigs[0].PrimaryName
	if signer == "" {
		signer = fmt.Sprintf("%016x", sigs[0].KeyId)
	}
	logrus.Infof("Good rpm signature on %s from %s", nevra, signer)
	return nil
}
