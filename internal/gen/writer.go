package gen

import (
	"bytes"
	"fmt"
	"os"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files, creating their directories.
// Files whose content is unchanged are not rewritten. It returns the paths
// actually written.
func WriteFiles(files []GeneratedFile) ([]string, error) {
	var written []string

	for _, file := range files {
		if err := os.MkdirAll(file.Dir, dirPerm); err != nil {
			return written, fmt.Errorf("creating output directory: %w", err)
		}

		if old, err := os.ReadFile(file.Path()); err == nil && bytes.Equal(old, file.Content) {
			continue
		}

		if err := os.WriteFile(file.Path(), file.Content, filePerm); err != nil {
			return written, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		written = append(written, file.Path())
	}

	return written, nil
}

// Stale reports whether the file on disk differs from the generated content.
func Stale(file GeneratedFile) (bool, error) {
	old, err := os.ReadFile(file.Path())
	if os.IsNotExist(err) {
		return true, nil
	}

	if err != nil {
		return false, fmt.Errorf("reading %s: %w", file.Path(), err)
	}

	return !bytes.Equal(old, file.Content), nil
}
