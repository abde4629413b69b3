package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ionnetwork/dlpick/internal/classifier"
	"github.com/ionnetwork/dlpick/internal/models"
	"github.com/ionnetwork/dlpick/internal/source"
	"github.com/ionnetwork/dlpick/internal/utils"
	"github.com/ionnetwork/dlpick/internal/verifier"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewDownloadCmd creates the download command
func NewDownloadCmd(config *models.Config) *cobra.Command {
	var client clientFlags

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download the recommended installer",
		Long: `Downloads the installer recommended for this machine (or for the client
given by --user-agent/--platform). With --verify the file is checked against
the checksum and OpenPGP signature published with the release.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := recommendFor(cmd.Context(), config, client.fingerprint())
			if err != nil {
				return err
			}

			rec := result.Recommendation
			if rec == nil {
				return fmt.Errorf("no automatic download for %s (%s); run 'dlpick recommend' to see all links",
					result.Fingerprint.OS, result.Fingerprint.Architecture)
			}

			path, err := runDownload(cmd.Context(), config, result.Release, rec)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	client.register(cmd, true)
	cmd.Flags().StringVarP(&config.OutputDir, "output-dir", "o", ".", "Directory to save the installer in")
	cmd.Flags().BoolVar(&config.Verify, "verify", false, "Verify the download against published checksums and signatures")
	cmd.Flags().StringVarP(&config.KeyringPath, "keyring", "k", "", "OpenPGP public keyring for signature verification")

	return cmd
}

func runDownload(ctx context.Context, config *models.Config, release *models.Release, rec *models.Recommendation) (string, error) {
	name, err := utils.SafeFileName(rec.FileName)
	if err != nil {
		return "", &models.DLError{Type: models.ErrFileOp, Source: rec.FileName, Err: err}
	}
	path := filepath.Join(config.OutputDir, name)

	if utils.Exists(path) {
		logrus.Warnf("Overwriting existing file %s", path)
	}

	downloader := source.NewDownloader(config)
	logrus.Infof("Downloading %s", rec.URL)
	n, err := downloader.Download(ctx, rec.URL, path)
	if err != nil {
		return "", err
	}
	logrus.Infof("Saved %s (%d bytes)", path, n)

	if !config.Verify {
		return path, nil
	}

	if err := verifyDownload(ctx, config, downloader, release.Assets, rec.FileName, path); err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			logrus.Warnf("Failed to remove unverified file %s: %v", path, rmErr)
		}
		return "", &models.DLError{Type: models.ErrVerify, Source: rec.FileName, Err: err}
	}

	return path, nil
}

func verifyDownload(ctx context.Context, config *models.Config, downloader *source.Downloader, assets []models.Asset, fileName, path string) error {
	sidecars := verifier.FindSidecars(assets, fileName)
	if sidecars.Checksum == nil && sidecars.Signature == nil {
		if classifier.DetectFormat(fileName) == models.FormatRpm {
			return verifyEmbeddedRPM(config, fileName, path)
		}
		return fmt.Errorf("release publishes no checksum or signature for %s", fileName)
	}

	if sidecars.Checksum != nil {
		data, err := downloader.Fetch(ctx, sidecars.Checksum.DownloadURL)
		if err != nil {
			return err
		}
		expected, err := verifier.ExpectedSHA256(data, fileName)
		if err != nil {
			return err
		}
		if err := verifier.VerifySHA256(path, expected); err != nil {
			return err
		}
		logrus.Infof("SHA-256 verified against %s", sidecars.Checksum.Name)
	}

	if sidecars.Signature != nil {
		if config.KeyringPath == "" {
			if sidecars.Checksum == nil {
				return fmt.Errorf("%s is signed but no --keyring was given", fileName)
			}
			logrus.Warnf("Skipping signature %s: no --keyring given", sidecars.Signature.Name)
			return nil
		}

		gpg, err := verifier.NewGPGVerifier(config.KeyringPath)
		if err != nil {
			return err
		}
		signature, err := downloader.Fetch(ctx, sidecars.Signature.DownloadURL)
		if err != nil {
			return err
		}
		if err := gpg.VerifyFile(path, signature); err != nil {
			return err
		}
		logrus.Infof("Signature verified against %s", sidecars.Signature.Name)
	}

	return nil
}

// verifyEmbeddedRPM falls back to the signature and digests carried inside
// an RPM package when the release ships no sidecar files for it.
func verifyEmbeddedRPM(config *models.Config, fileName, path string) error {
	if config.KeyringPath == "" {
		return fmt.Errorf("%s has no published checksum; --keyring is required to check its embedded signature", fileName)
	}

	gpg, err := verifier.NewGPGVerifier(config.KeyringPath)
	if err != nil {
		return err
	}
	if err := gpg.VerifyRPM(path); err != nil {
		return err
	}
	logrus.Infof("Embedded rpm signature verified for %s", fileName)
	return nil
}
