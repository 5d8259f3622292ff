package main

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// write renders v in the selected --format.
func write(w io.Writer, v any) error {
	var (
		out []byte
		err error
	)
	switch format {
	case "json":
		out, err = json.MarshalIndent(v, "", "  ")
		out = append(out, '\n')
	case "yaml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(v); err == nil {
			err = enc.Close()
		}
		out = buf.Bytes()
	default:
		return fmt.Errorf("unknown --format %q (json, yaml)", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
