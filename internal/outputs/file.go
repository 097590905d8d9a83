package outputs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// DefaultFilename is written next to the config file.
const DefaultFilename = "outputs.json"

// ErrNoOutputs is returned when a stack has not been applied yet.
var ErrNoOutputs = errors.New("no outputs found, run apply first")

// WriteFile stores o as indented JSON.
func WriteFile(path string, o Outputs) error {
	data, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal outputs: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write outputs file: %w", err)
	}
	return nil
}

// ReadFile loads outputs written by WriteFile.
func ReadFile(path string) (Outputs, error) {
	var o Outputs
	// #nosec G304
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return o, fmt.Errorf("%s: %w", path, ErrNoOutputs)
	}
	if err != nil {
		return o, fmt.Errorf("failed to read outputs file: %w", err)
	}
	if err := json.Unmarshal(data, &o); err != nil {
		return o, fmt.Errorf("failed to parse outputs file %s: %w", path, err)
	}
	return o, nil
}

// RemoveFile deletes the outputs file. A missing file is not an error.
func RemoveFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove outputs file: %w", err)
	}
	return nil
}
