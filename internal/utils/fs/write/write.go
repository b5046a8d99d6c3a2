// Package write provides filesystem write helpers.
package write

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"audiorr/internal/utils/logging"
)

// WriteJSONFile marshals v with indentation and writes it to fpath.
func WriteJSONFile(fpath string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON for %q: %w", fpath, err)
	}

	if err := os.WriteFile(fpath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", fpath, err)
	}

	logging.D(2, "Wrote JSON file %q (%d bytes)", fpath, len(data))
	return nil
}

// AppendURLsToFile appends new URLs to the specified file, skipping any
// already present.
func AppendURLsToFile(filename string, urls []string) error {
	if len(urls) == 0 {
		return nil
	}

	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", filename, err)
	}

	written := make(map[string]bool)

	existingFile, err := os.Open(filename)
	if err == nil {
		scanner := bufio.NewScanner(existingFile)
		for scanner.Scan() {
			written[scanner.Text()] = true
		}
		scanErr := scanner.Err()
		existingFile.Close()
		if scanErr != nil {
			return fmt.Errorf("error reading existing URLs: %w", scanErr)
		}
	}

	file, err := os.OpenFile(filename, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, url := range urls {
		if url != "" && !written[url] {
			if _, err := writer.WriteString(url + "\n"); err != nil {
				return fmt.Errorf("error writing URL to file: %w", err)
			}
			written[url] = true
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("error flushing writer: %w", err)
	}

	return nil
}
