package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"
)

// Read reads a scenario from the given file. Environment variables in the file are expanded.
func Read(filePath string) (*Scenario, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return FromReader(filePath, bytes.NewReader(buf))
}

// FromReader reads a scenario from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(originalPath string, r io.Reader) (*Scenario, error) {
	var attrs AttributeMap
	if err := json.NewDecoder(r).Decode(&attrs); err != nil {
		return nil, errors.Wrapf(err, "failed to decode scenario from json (%s)", originalPath)
	}
	s, err := ScenarioFromAttributes(attrs)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid scenario (%s)", originalPath)
	}
	return s, nil
}

// Write stores a scenario as indented json.
func Write(filePath string, s *Scenario) error {
	md, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	//nolint:gosec
	return os.WriteFile(filePath, md, 0o644)
}
