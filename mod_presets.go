package galaxy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/gekko3d/galaxy/galaxyrt/core"
)

// SavePreset writes p as indented JSON.
func SavePreset(filename string, p core.ParameterSet) error {
	if err := p.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// LoadPreset reads a preset. Fields missing from the file keep their
// default values; unknown fields are an error.
func LoadPreset(filename string) (core.ParameterSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return core.ParameterSet{}, err
	}
	return DecodePreset(data)
}

func DecodePreset(data []byte) (core.ParameterSet, error) {
	p := core.DefaultParameters()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return core.ParameterSet{}, fmt.Errorf("decode preset: %w", err)
	}
	if err := p.Validate(); err != nil {
		return core.ParameterSet{}, err
	}
	return p, nil
}
