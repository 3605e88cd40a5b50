// Package checksum computes xxHash64 digests used to fingerprint the input
// and output files of a reconciliation run.
package checksum

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// File returns the hex-encoded xxHash64 digest of the file at path.
func File(path string) (string, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}

	defer func() {
		_ = file.Close()
	}()

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Bytes returns the hex-encoded xxHash64 digest of the provided data.
func Bytes(data []byte) string {
	digest := xxhash.New()
	_, _ = digest.Write(data)

	return hex.EncodeToString(digest.Sum(nil))
}
