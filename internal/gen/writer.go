package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// GeneratedFile represents one emitted fragment.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "generated_header.hxx").
	Filename string
	// Content is the file body.
	Content []byte
}

// WriteFiles writes all generated files to the output directory.
// It creates the directory if it doesn't exist. Files are first written
// next to their target and renamed, so a failed run leaves old outputs intact.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)
		tmpPath := outputPath + ".tmp"

		if err := os.WriteFile(tmpPath, file.Content, filePerm); err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		if err := os.Rename(tmpPath, outputPath); err != nil {
			return fmt.Errorf("replacing file %s: %w", file.Filename, err)
		}
	}

	return nil
}
