// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: entrez-email, ncbi-api-key.
package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Key names understood by the CLI.
const (
	EntrezEmail = "entrez-email"
	NCBIAPIKey  = "ncbi-api-key"
)

// Secrets maps key file names to their trimmed contents.
type Secrets map[string]string

// Get returns value when it is non-empty, otherwise the secret stored under
// key, otherwise "". Explicit configuration always wins over a secret file.
func (s Secrets) Get(key, value string) string {
	if value != "" {
		return value
	}
	return s[key]
}

// Keys returns the loaded key names in sorted order.
func (s Secrets) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load collects the non-empty files of dir into Secrets, keyed by filename.
// Dotfiles and subdirectories are skipped. A missing dir yields empty
// Secrets. A file that cannot be read is logged and left out.
func Load(dir string, logger *zap.Logger) (Secrets, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("no secrets directory", zap.String("dir", dir))
		return Secrets{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := make(Secrets, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		value, err := readValue(filepath.Join(dir, entry.Name()))
		if err != nil {
			logger.Warn("skipping unreadable secret", zap.String("key", entry.Name()), zap.Error(err))
			continue
		}
		if value != "" {
			s[entry.Name()] = value
		}
	}
	return s, nil
}

func readValue(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
