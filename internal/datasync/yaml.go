package datasync

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ExportFileName is the file written by YAMLSink.
const ExportFileName = "wordbook.yml"

// YAMLSink writes documents to YAML files.
type YAMLSink struct {
	outputDir string
}

// NewYAMLSink creates a new YAMLSink.
func NewYAMLSink(outputDir string) *YAMLSink {
	return &YAMLSink{outputDir: outputDir}
}

// Write stores doc in the output directory and returns the file path.
func (s *YAMLSink) Write(doc *Document) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(s.outputDir, ExportFileName)
	if err := writeYAML(path, doc); err != nil {
		return "", fmt.Errorf("write %s: %w", ExportFileName, err)
	}
	return path, nil
}

func writeYAML(path string, data interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	defer func() { _ = enc.Close() }()
	return enc.Encode(data)
}

// ReadYAML loads a document written by YAMLSink or by hand.
func ReadYAML(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var doc Document
	if err := yaml.NewDecoder(f).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("yaml.Decode(%s) > %w", path, err)
	}
	return &doc, nil
}
