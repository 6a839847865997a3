package equation

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/karupanerura/prefixcalc/internal/types"
	"github.com/mitchellh/mapstructure"
)

const maxEquationSize = 1024 * 1024

// ParseText reads whitespace separated infix expressions.
func ParseText(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxEquationSize)
	scanner.Split(bufio.ScanWords)

	var infixes []string
	for scanner.Scan() {
		infixes = append(infixes, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner.Scan: %w", err)
	}
	return infixes, nil
}

func ParseYAML(r io.Reader) ([]string, error) {
	yamlBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}

	jsonBytes, err := yaml.YAMLToJSON(yamlBytes)
	if err != nil {
		return nil, fmt.Errorf("yaml.YAMLToJSON: %w", err)
	}

	return ParseJSON(bytes.NewReader(jsonBytes))
}

type equationFileDef struct {
	Equations []string `mapstructure:"equations"`
}

// ParseJSON reads either a list of infix strings or an object with an "equations" list.
func ParseJSON(r io.Reader) ([]string, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("json.Decode: %w", err)
	}

	switch v := doc.(type) {
	case []any:
		var infixes []string
		if err := mapstructure.Decode(v, &infixes); err != nil {
			return nil, valueError(fmt.Errorf("mapstructure.Decode: %w", err))
		}
		return infixes, nil

	case map[string]any:
		var def equationFileDef
		if err := mapstructure.Decode(v, &def); err != nil {
			return nil, valueError(fmt.Errorf("mapstructure.Decode: %w", err))
		}
		return def.Equations, nil

	default:
		return nil, valueError(fmt.Errorf("unsupported equation document: %T", doc))
	}
}

func valueError(err error) error {
	return &types.Error{Tag: types.ValueErrorTag, Err: err}
}
