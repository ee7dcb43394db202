package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
)

// emit prints v as indented JSON, optionally drilled into with the
// --query gjson path first.
func emit(cmd *cli.Command, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}

	if q := cmd.String("query"); q != "" {
		res := gjson.GetBytes(raw, q)
		if !res.Exists() {
			return fmt.Errorf("query %q matched nothing", q)
		}
		if res.Type == gjson.String {
			fmt.Fprintln(os.Stdout, res.String())
			return nil
		}
		return emitIndented(json.RawMessage(res.Raw))
	}

	return emitIndented(json.RawMessage(raw))
}

func emitIndented(raw json.RawMessage) error {
	out, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}

// jsonFlag parses a flag value expected to hold a JSON fragment.
func jsonFlag(cmd *cli.Command, name string) (json.RawMessage, error) {
	v := cmd.String(name)
	if v == "" {
		return nil, nil
	}
	if !json.Valid([]byte(v)) {
		return nil, fmt.Errorf("--%s must be valid JSON", name)
	}
	return json.RawMessage(v), nil
}

// jsonObjectFlag parses a flag value expected to hold a JSON object,
// decoded into a property map.
func jsonObjectFlag(cmd *cli.Command, name string) (map[string]json.RawMessage, error) {
	v := cmd.String(name)
	if v == "" {
		return nil, nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal([]byte(v), &m); err != nil {
		return nil, fmt.Errorf("--%s must be a JSON object: %w", name, err)
	}
	return m, nil
}

// jsonArrayFlag parses a flag value expected to hold a JSON array.
func jsonArrayFlag(cmd *cli.Command, name string) ([]json.RawMessage, error) {
	v := cmd.String(name)
	if v == "" {
		return nil, nil
	}
	var a []json.RawMessage
	if err := json.Unmarshal([]byte(v), &a); err != nil {
		return nil, fmt.Errorf("--%s must be a JSON array: %w", name, err)
	}
	return a, nil
}
