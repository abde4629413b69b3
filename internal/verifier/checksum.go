package verifier

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ionnetwork/dlpick/internal/utils"
)

// ExpectedSHA256 finds the digest for fileName in a checksum file. Both the
// "<hex>  <name>" listing format and a bare single-digest file are accepted.
func ExpectedSHA256(data []byte, fileName string) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}

	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		name := strings.TrimPrefix(fields[len(fields)-1], "*")
		if name == fileName && isSHA256(fields[0]) {
			return strings.ToLower(fields[0]), nil
		}
	}

	if len(lines) == 1 {
		fields := strings.Fields(lines[0])
		if len(fields) > 0 && isSHA256(fields[0]) && (len(fields) == 1 || strings.TrimPrefix(fields[1], "*") == fileName) {
			return strings.ToLower(fields[0]), nil
		}
	}

	return "", fmt.Errorf("no SHA-256 entry for %s", fileName)
}

// VerifySHA256 compares the file at path against the expected hex digest
func VerifySHA256(path, expected string) error {
	sum, err := utils.SHA256File(path)
	if err != nil {
		return fmt.Errorf("failed to hash %s: %w", path, err)
	}
	if !strings.EqualFold(sum, expected) {
		return fmt.Errorf("SHA-256 mismatch: got %s, want %s", sum, expected)
	}
	return nil
}

func isSHA256(s string) bool {
	if len(s) != 64 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
