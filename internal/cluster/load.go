package cluster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlFile is the structure of a YAML cluster file.
//
//	clusters:
//	  - name: Service
//	    keywords: [service, staff, crew]
type yamlFile struct {
	Clusters []Definition `yaml:"clusters"`
}

// LoadFile loads cluster definitions from a .csv, .yaml or .yml file.
func LoadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cluster file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(f)
	case ".yaml", ".yml":
		return LoadYAML(f)
	default:
		return nil, fmt.Errorf("unsupported cluster file extension %q", filepath.Ext(path))
	}
}

// LoadCSV reads a table where each column header is a cluster name and the
// non-empty cells below it are that cluster's keywords. Columns may be ragged.
func LoadCSV(r io.Reader) (*Index, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return New(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cluster header: %w", err)
	}

	defs := make([]Definition, len(header))
	for i, name := range header {
		defs[i].Name = strings.TrimPrefix(name, "\ufeff")
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read cluster row: %w", err)
		}
		for i, cell := range row {
			if i >= len(defs) || strings.TrimSpace(cell) == "" {
				continue
			}
			defs[i].Keywords = append(defs[i].Keywords, cell)
		}
	}

	return New(defs)
}

// LoadYAML reads an ordered list of cluster definitions.
func LoadYAML(r io.Reader) (*Index, error) {
	var file yamlFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode cluster yaml: %w", err)
	}
	return New(file.Clusters)
}
