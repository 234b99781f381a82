package cnab

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// schemaDoc is the document form of a layout, shared by the YAML and TOML
// loaders. The record key labels the document for humans and is not part of
// the schema.
type schemaDoc struct {
	Record string     `yaml:"record" toml:"record"`
	Fields []fieldDoc `yaml:"fields" toml:"fields"`
}

type fieldDoc struct {
	Name string `yaml:"name" toml:"name"`
	Pos  string `yaml:"pos" toml:"pos"`
	Kind string `yaml:"kind" toml:"kind"`
}

// ParseSchemaYAML loads a layout from a YAML document:
//
//	record: cnab240-header
//	fields:
//	  - name: banco
//	    pos: 1..3
//	    kind: numeric
//	  - name: nome
//	    pos: 43..72
//	  - name: saldo
//	    pos: 73..90
//	    kind: decimal(2)
//
// pos and kind use the struct tag grammar; a missing kind means alpha. The
// loaded fields go through the same validation as NewSchema, so a document
// with overlapping fields fails with *OverlapError.
func ParseSchemaYAML(data []byte) (*Schema, error) {
	var doc schemaDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "cnab: schema document")
	}
	return doc.schema()
}

// ParseSchemaTOML is ParseSchemaYAML for TOML documents:
//
//	record = "cnab240-header"
//
//	[[fields]]
//	name = "banco"
//	pos = "1..3"
//	kind = "numeric"
func ParseSchemaTOML(data []byte) (*Schema, error) {
	var doc schemaDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "cnab: schema document")
	}
	return doc.schema()
}

func (d schemaDoc) schema() (*Schema, error) {
	fields := make([]FieldSpec, 0, len(d.Fields))
	for _, f := range d.Fields {
		pos, ok := parsePos(f.Pos)
		if !ok {
			return nil, errors.Errorf("cnab: schema field %q: bad pos %q", f.Name, f.Pos)
		}
		kind, scale := Alpha, uint8(0)
		if f.Kind != "" {
			if kind, scale, ok = parseKind(f.Kind); !ok {
				return nil, errors.Errorf("cnab: schema field %q: bad kind %q", f.Name, f.Kind)
			}
		}
		fields = append(fields, FieldSpec{Name: f.Name, Pos: pos, Kind: kind, Scale: scale})
	}
	return NewSchema(fields...)
}
