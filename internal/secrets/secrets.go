// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads optional credentials from a directory of plain-text
// files: the filename is the key name and the trimmed file contents are the
// value.
//
// The only key arxiv-digest uses is inference-api-token, the bearer token for
// the hosted summarization endpoint.
package secrets

import (
	"os"
	"path/filepath"
	"strings"
)

// Read returns the trimmed contents of dir/name. A missing directory, a
// missing file, or an empty file is not an error; ok is false and the value
// is empty.
func Read(dir, name string) (value string, ok bool) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return "", false
	}
	v := strings.TrimSpace(string(data))
	return v, v != ""
}
