package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/itchyny/gojq"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// RenderResponse prints a raw API response body in the requested format,
// optionally filtered through a jq expression first.
func RenderResponse(w io.Writer, raw json.RawMessage, format, jqExpr string) error {
	var data interface{}

	err := json.Unmarshal(raw, &data)
	if err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}

	if jqExpr != "" {
		data, err = applyFilter(data, jqExpr)
		if err != nil {
			return err
		}
	}

	switch format {
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(w)

		return encoder.Encode(data)
	default:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return encoder.Encode(data)
	}
}

// applyFilter runs a jq expression over decoded response data. A single
// result collapses to the bare value; multiple results print as a list.
func applyFilter(data interface{}, expression string) (interface{}, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	var results []interface{}

	iter := query.Run(data)

	for {
		value, ok := iter.Next()
		if !ok {
			break
		}

		if err, ok := value.(error); ok {
			return nil, fmt.Errorf("jq filter: %w", err)
		}

		results = append(results, value)
	}

	if len(results) == 1 {
		return results[0], nil
	}

	return results, nil
}
