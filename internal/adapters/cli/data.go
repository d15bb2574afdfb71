package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	yaml "go.yaml.in/yaml/v3"
)

// Supported --data-format values.
const (
	formatJSON = "json"
	formatTOML = "toml"
	formatYAML = "yaml"
)

// readData resolves the --data flag: empty means no data, "-" reads stdin,
// anything else is the document itself.
func readData(raw string, stdin io.Reader) ([]byte, error) {
	switch raw {
	case "":
		return nil, nil
	case "-":
		buf, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("cli: reading data from stdin: %w", err)
		}
		return buf, nil
	default:
		return []byte(raw), nil
	}
}

// decodeData parses a data document into a generic tree ready for
// templater.Flatten.
func decodeData(buf []byte, format string) (any, error) {
	if len(bytes.TrimSpace(buf)) == 0 {
		return nil, nil
	}

	var value any
	switch strings.ToLower(format) {
	case formatJSON, "":
		dec := json.NewDecoder(bytes.NewReader(buf))
		dec.UseNumber()
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("cli: invalid json data: %w", err)
		}
	case formatTOML:
		doc := map[string]any{}
		if err := toml.Unmarshal(buf, &doc); err != nil {
			return nil, fmt.Errorf("cli: invalid toml data: %w", err)
		}
		value = doc
	case formatYAML, "yml":
		if err := yaml.Unmarshal(buf, &value); err != nil {
			return nil, fmt.Errorf("cli: invalid yaml data: %w", err)
		}
	default:
		return nil, fmt.Errorf("cli: unknown data format %q (json, toml or yaml)", format)
	}
	return value, nil
}
