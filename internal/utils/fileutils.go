package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListFilesWithExt returns the names of the entries in dir whose name ends in
// ext, sorted lexicographically. Entries are not stat'ed.
func ListFilesWithExt(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ext) {
			names = append(names, entry.Name())
		} else {
			LogDebug("Skipping %s", entry.Name())
		}
	}

	sort.Strings(names)
	return names, nil
}

// ReadRegularFile reads the full contents of a regular file, following symlinks.
// The mode is checked before opening: opening a FIFO for reading blocks until
// a writer appears.
func ReadRegularFile(filePath string) ([]byte, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", filePath)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			LogWarning("Failed to close file: %v", err)
		}
	}()

	// The entry may have been replaced since the first check
	if info, err = f.Stat(); err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", filePath)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	LogDebug("Read %d bytes from %s", len(data), filePath)
	return data, nil
}

// WriteTextFile writes content to filePath, creating parent directories as needed
func WriteTextFile(filePath string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			LogWarning("Failed to close file: %v", err)
		}
	}()

	writer := bufio.NewWriter(f)
	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush writer: %w", err)
	}

	LogDebug("Successfully wrote %s", filePath)
	return nil
}
