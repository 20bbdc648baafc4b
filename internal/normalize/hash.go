package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// FileHash returns the hex SHA-256 of an E-Saúde export. The digest
// identifies the source file in run summaries and in esaude.source_files, so
// reloading an unchanged export is detected regardless of its file name.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open export %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash export %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
