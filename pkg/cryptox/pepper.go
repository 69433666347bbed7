package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// pepperSize is the number of random bytes in a generated pepper.
const pepperSize = 32

// LoadOrGeneratePepper reads the pepper stored at path. When the file does not
// exist a new pepper is generated and written with 0600 permissions.
func LoadOrGeneratePepper(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("pepper path is empty")
	}

	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", err
	}

	existing, err := os.ReadFile(path)
	if err == nil {
		return strings.TrimSpace(string(existing)), nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	pepperBytes := make([]byte, pepperSize)
	if _, err := rand.Read(pepperBytes); err != nil {
		return "", err
	}
	pepper := base64.RawURLEncoding.EncodeToString(pepperBytes)

	if err := os.WriteFile(path, []byte(pepper), 0600); err != nil {
		return "", err
	}
	return pepper, nil
}
