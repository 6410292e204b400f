// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/xataio/clinnorm/internal/tsv"
)

type yamlRulesFile struct {
	Rules []map[string]any `yaml:"rules"`
}

// ReadFile reads the mapping rules from a tab delimited file or, for .yaml and
// .yml files, from a YAML document with a top level `rules` list. The rules
// are returned in file order, trimmed and with blank fields set to NA.
func ReadFile(path string) ([]MappingRule, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return readYAMLFile(path)
	case ".txt", ".tsv", ".tab", "":
		return readTSVFile(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileFormat, ext)
	}
}

func readTSVFile(path string) ([]MappingRule, error) {
	table, err := tsv.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mapping file: %w", err)
	}
	if !table.HasColumn(ProcessingTypeColumn) {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ProcessingTypeColumn)
	}

	records := table.Records()
	rules := make([]MappingRule, 0, len(records))
	for _, record := range records {
		rules = append(rules, ruleFromRecord(record))
	}
	return rules, nil
}

func readYAMLFile(path string) ([]MappingRule, error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mapping file: %w", err)
	}

	file := yamlRulesFile{}
	if err := yaml.Unmarshal(yamlFile, &file); err != nil {
		return nil, fmt.Errorf("unmarshaling yaml file into mapping rules: %w", err)
	}

	rules := make([]MappingRule, 0, len(file.Rules))
	for i, raw := range file.Rules {
		rule, err := decodeRule(raw)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		rules = append(rules, rule.Normalize())
	}
	return rules, nil
}

// decodeRule decodes a YAML rule entry. Scalars that YAML resolves to numbers
// or booleans (e.g. an age bucket of 5) are kept as their string form.
func decodeRule(raw map[string]any) (MappingRule, error) {
	rule := MappingRule{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  scalarToStringHook,
		ErrorUnused: true,
		Result:      &rule,
	})
	if err != nil {
		return MappingRule{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return MappingRule{}, err
	}
	return rule, nil
}

func scalarToStringHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String || data == nil {
		return data, nil
	}
	switch from.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprint(data), nil
	default:
		return data, nil
	}
}
