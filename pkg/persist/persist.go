// Package persist is the flat-file persistence adapter for filmdesk.
// Every collection (catalog, users, sales) is stored as a single JSON
// array document: UTF-8, pretty-printed, one file per collection.
//
// Missing documents are treated as empty collections and lazily created
// with an empty array on first access. A document that fails to parse
// degrades to an empty collection rather than failing the load; the
// condition is logged so operators can detect data loss.
package persist

import (
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/filmdesk/filmdesk/pkg/errors"
	"github.com/filmdesk/filmdesk/pkg/logging"
)

const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created documents (rw-r--r--)
	FilePermissions = 0644
)

// LoadArray reads a JSON array document into a slice of records.
// A missing file is created containing an empty array; a malformed
// document yields an empty slice.
func LoadArray[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.NewPersistenceError("read", path, err)
		}
		// First access: create the document with an empty array.
		if err := SaveArray(path, []T{}); err != nil {
			return nil, err
		}
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		logging.Warn().
			Str("path", path).
			Err(err).
			Msg("Document is malformed, treating as empty collection")
		return []T{}, nil
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// SaveArray writes a slice of records as a pretty-printed JSON array,
// creating parent directories as needed. Records marshal to `[]`, never
// `null`, so a freshly created document is a valid empty collection.
func SaveArray[T any](path string, records []T) error {
	if records == nil {
		records = []T{}
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return errors.NewPersistenceError("encode", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return errors.NewPersistenceError("create", dir, err)
	}

	if err := os.WriteFile(path, data, FilePermissions); err != nil {
		return errors.NewPersistenceError("write", path, err)
	}
	return nil
}
