package catalog

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// registryDoc is the on-disk form of a static registry:
//
//	entries:
//	  - key: general
//	    identifier: general
//	    route: /settings/general
//	    fields:
//	      tabMessage: {message: general}
//	      descriptionMessage: {text: Convert balances to fiat}
type registryDoc struct {
	Entries []entryDoc `yaml:"entries"`
}

type entryDoc struct {
	Key        string              `yaml:"key"`
	Identifier string              `yaml:"identifier"`
	Route      string              `yaml:"route"`
	Fields     map[string]fieldDoc `yaml:"fields"`
}

type fieldDoc struct {
	Text    *string `yaml:"text"`
	Message *string `yaml:"message"`
}

func (f fieldDoc) field() (Field, error) {
	switch {
	case f.Text != nil && f.Message != nil:
		return Field{}, errors.New("field sets both text and message")
	case f.Text != nil:
		return Literal(*f.Text), nil
	case f.Message != nil:
		return Message(*f.Message), nil
	default:
		return Field{}, errors.New("field sets neither text nor message")
	}
}

// LoadRegistry decodes a YAML registry document. Entries keep document order.
func LoadRegistry(r io.Reader) (*Registry, error) {
	var doc registryDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return NewRegistry(), nil
		}
		return nil, errors.Mark(errors.Wrap(err, "decode registry"), ErrInvalidRegistry)
	}

	reg := NewRegistry()
	for i, ed := range doc.Entries {
		entry := Entry{
			Identifier: ed.Identifier,
			Route:      ed.Route,
			Fields:     make(map[string]Field, len(ed.Fields)),
		}
		for name, fd := range ed.Fields {
			f, err := fd.field()
			if err != nil {
				return nil, errors.Mark(errors.Wrapf(err, "entry %d (%s) field %q", i, ed.Key, name), ErrInvalidRegistry)
			}
			entry.Fields[name] = f
		}
		if err := reg.Add(ed.Key, entry); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "entry %d", i), ErrInvalidRegistry)
		}
	}
	return reg, nil
}

// LoadRegistryFile reads a YAML registry document from path.
func LoadRegistryFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open registry %s", path)
	}
	defer func() {
		_ = f.Close()
	}()
	return LoadRegistry(f)
}
