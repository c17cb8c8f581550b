package forms

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"
)

//go:embed definitions/*.yaml
var builtin embed.FS

// Parse decodes and checks one YAML form definition.
func Parse(data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("decode form definition: %w", err)
	}
	if err := def.check(); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadDir parses every *.yaml file of fsys keyed by form type.
func LoadDir(fsys fs.FS, dir string) (map[string]*Definition, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read definitions: %w", err)
	}
	defs := make(map[string]*Definition, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		def, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		if _, dup := defs[def.Type]; dup {
			return nil, fmt.Errorf("%s: duplicate form type %q", e.Name(), def.Type)
		}
		defs[def.Type] = def
	}
	return defs, nil
}

// LoadBuiltin returns the definitions embedded in the binary.
func LoadBuiltin() (map[string]*Definition, error) {
	return LoadDir(builtin, "definitions")
}
