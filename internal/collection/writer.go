// Package collection writes generated collections to disk.
//
// Write creates the output directory if needed, encodes the collection as
// 2-space indented JSON and replaces any existing file at the target path.
package collection

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// DefaultOutputPath returns the path the generator writes to, relative to the
// working directory
func DefaultOutputPath() string {
	return filepath.Join("build", "postman", FileName)
}

// Marshal encodes the collection exactly as it is written to disk
func Marshal(c *Collection) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("collection is nil")
	}
	data, err := encodeIndented(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal collection: %w", err)
	}
	return data, nil
}

// Write serializes the collection to path, creating parent directories and
// overwriting any existing file. A failed write may leave a partial file.
func Write(c *Collection, path string) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write collection: %w", err)
	}

	log.Printf("Generated %s with %d folder(s) and %d request(s)", filepath.Base(path), len(c.Folders), c.ItemCount())
	return nil
}
