package checksum

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/addonrepo/addonrepo/internal/platform"
)

// ErrMismatch is returned by Verify when the digest file is stale.
var ErrMismatch = errors.New("checksum mismatch")

// Sum returns the lowercase hex MD5 digest of data.
func Sum(data []byte) string {
	h := md5.Sum(data)
	return hex.EncodeToString(h[:])
}

// Write stores the digest of data at path and returns it.
func Write(path string, data []byte) (string, error) {
	sum := Sum(data)
	if err := platform.WriteFileAtomic(path, []byte(sum), 0644); err != nil {
		return "", fmt.Errorf("writing checksum %s: %w", path, err)
	}
	return sum, nil
}

// WriteFor recomputes the digest file for the file at indexPath.
func WriteFor(indexPath, sumPath string) (string, error) {
	data, err := os.ReadFile(indexPath)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", indexPath, err)
	}
	return Write(sumPath, data)
}

// Read returns the digest stored at path. Surrounding whitespace and a
// trailing "  filename" column (md5sum format) are ignored.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading checksum %s: %w", path, err)
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), nil
}

// Verify checks that the digest file matches the index file.
func Verify(indexPath, sumPath string) error {
	data, err := os.ReadFile(indexPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", indexPath, err)
	}
	expected, err := Read(sumPath)
	if err != nil {
		return err
	}
	actual := Sum(data)
	if actual != expected {
		return fmt.Errorf("%w: %s has %s, %s hashes to %s", ErrMismatch, sumPath, expected, indexPath, actual)
	}
	return nil
}
