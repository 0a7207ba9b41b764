package cmd

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

// printOutput writes v as indented JSON, or as YAML converted from that JSON
// so both formats share field names.
func printOutput(w io.Writer, format string, v any) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if format != outputYAML {
		_, err = w.Write(append(bz, '\n'))
		return err
	}

	var generic any
	if err := json.Unmarshal(bz, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}
