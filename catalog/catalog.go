// Package catalog loads record type definitions from configuration files.
//
// A catalog is a YAML document declaring one record type per entry:
//
//	types:
//	  Point:
//	    fields: [x, y]
//	    field_defaults: {y: 0}
//	  Host:
//	    fields: "id provider ip_address"
//	    default: ""
//
// Each type block recognizes exactly three options: fields, field_defaults,
// and default. Anything else is rejected, so a typo in a catalog fails at
// load time instead of silently defining the wrong schema.
package catalog

import (
	"fmt"
	"sort"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/jacentio/strata/record"
)

// Load reads a YAML catalog from path and defines every type it declares
// into a fresh registry.
func Load(path string) (*record.Registry, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("strata: load catalog %q: %w", path, err)
	}
	return Parse(k)
}

// Parse defines every type declared under the "types" key of an already
// loaded configuration tree.
func Parse(k *koanf.Koanf) (*record.Registry, error) {
	raw := k.Get("types")
	if raw == nil {
		return nil, fmt.Errorf("strata: catalog has no types section")
	}
	blocks, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("strata: catalog types section must be a mapping, got %T", raw)
	}

	// Definition order is deterministic regardless of map iteration.
	names := make([]string, 0, len(blocks))
	for name := range blocks {
		names = append(names, name)
	}
	sort.Strings(names)

	reg := record.NewRegistry()
	for _, name := range names {
		if err := defineType(reg, name, blocks[name]); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// defineType validates one type block and defines it into reg.
func defineType(reg *record.Registry, name string, block any) error {
	options, ok := block.(map[string]any)
	if !ok {
		return fmt.Errorf("strata: type %q must be a mapping, got %T", name, block)
	}

	var (
		fields any
		opts   []record.Option
	)
	for key, value := range options {
		switch key {
		case "fields":
			fields = normalizeFieldList(value)
		case "field_defaults":
			defaults, ok := value.(map[string]any)
			if !ok {
				return fmt.Errorf("strata: type %q: field_defaults must be a mapping, got %T", name, value)
			}
			opts = append(opts, record.WithFieldDefaults(defaults))
		case "default":
			opts = append(opts, record.WithDefault(value))
		default:
			return fmt.Errorf("%w: %q in type %q", record.ErrUnknownOption, key, name)
		}
	}

	if _, err := reg.Define(name, fields, opts...); err != nil {
		return fmt.Errorf("strata: type %q: %w", name, err)
	}
	return nil
}

// normalizeFieldList converts a YAML field list ([]any of strings) to the
// []string form Define accepts; scalar strings pass through.
func normalizeFieldList(value any) any {
	list, ok := value.([]any)
	if !ok {
		return value
	}
	names := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return value
		}
		names = append(names, s)
	}
	return names
}
