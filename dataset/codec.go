package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// FromJSON decodes a DataSet from JSON bytes.
func FromJSON(data []byte) (*DataSet, error) {
	var ds DataSet
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("dataset: decode json: %w", err)
	}
	return &ds, nil
}

// ToJSON encodes a DataSet as indented JSON.
func ToJSON(ds *DataSet) ([]byte, error) {
	out, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("dataset: encode json: %w", err)
	}
	return out, nil
}

// FromYAML decodes a DataSet from YAML bytes.
func FromYAML(data []byte) (*DataSet, error) {
	var ds DataSet
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("dataset: decode yaml: %w", err)
	}
	return &ds, nil
}

// ToYAML encodes a DataSet as YAML.
func ToYAML(ds *DataSet) ([]byte, error) {
	out, err := yaml.Marshal(ds)
	if err != nil {
		return nil, fmt.Errorf("dataset: encode yaml: %w", err)
	}
	return out, nil
}

// Decode picks the codec from the file name extension: .yaml/.yml use YAML,
// everything else JSON.
func Decode(name string, data []byte) (*DataSet, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FromYAML(data)
	default:
		return FromJSON(data)
	}
}
