package mesh

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads a mesh from disk. Files ending in .stl are parsed as STL, every
// other file as comma-separated triangle records. When the file cannot be
// opened the returned error wraps ErrFileAccess and the model is nil.
func Load(filename string) (*Model, []Diagnostic, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrFileAccess, filename, err)
	}
	defer file.Close()

	var (
		model       *Model
		diagnostics []Diagnostic
	)
	if strings.EqualFold(filepath.Ext(filename), ".stl") {
		model, diagnostics, err = ParseSTL(file)
	} else {
		model, diagnostics, err = ParseRecords(file)
	}
	if err != nil {
		return nil, diagnostics, fmt.Errorf("%w: %s: %v", ErrFileAccess, filename, err)
	}

	if model.Name == "" {
		model.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return model, diagnostics, nil
}
