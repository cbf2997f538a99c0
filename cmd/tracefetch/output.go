package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// sanitizeFilename maps a record id to a safe filename. Anything outside
// letters, digits, dot, dash and underscore is replaced.
func sanitizeFilename(id string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, id)

	// Avoid hidden files and empty names.
	mapped = strings.TrimLeft(mapped, ".")
	if mapped == "" {
		return "record"
	}
	return mapped
}

// writeRecord writes one record as indented JSON into dir.
func writeRecord(dir, id string, v any) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return goerr.Wrap(err, "failed to create output directory", goerr.Value("dir", dir))
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal record", goerr.Value("id", id))
	}

	path := filepath.Join(dir, sanitizeFilename(id)+".json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return goerr.Wrap(err, "failed to write record file", goerr.Value("path", path))
	}

	return nil
}
