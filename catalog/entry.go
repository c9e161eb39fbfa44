package catalog

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Default field keys of a settings entry.
const (
	KeyTab         = "tabMessage"
	KeySection     = "sectionMessage"
	KeyDescription = "descriptionMessage"
)

// DefaultKeys lists the fields searched when no explicit key set is configured.
var DefaultKeys = []string{KeyTab, KeySection, KeyDescription}

// Localizer translates a message key into display text.
// An empty return value means the key has no translation.
type Localizer func(key string) string

// TextFunc computes field text at query time.
type TextFunc func(t Localizer) string

// Field is the text of one named entry attribute. It holds either a literal
// string or a function resolved against a Localizer.
type Field struct {
	text string
	fn   TextFunc
}

// Literal returns a field with fixed text.
func Literal(text string) Field {
	return Field{text: text}
}

// Computed returns a field whose text is produced by fn on every resolve.
func Computed(fn TextFunc) Field {
	return Field{fn: fn}
}

// Message returns a computed field that translates key.
func Message(key string) Field {
	return Computed(func(t Localizer) string {
		return t(key)
	})
}

// IsComputed reports whether the field depends on a Localizer.
func (f Field) IsComputed() bool {
	return f.fn != nil
}

// Resolve returns the field text. Literal fields ignore t.
func (f Field) Resolve(t Localizer) (text string, err error) {
	if f.fn == nil {
		return f.text, nil
	}
	if t == nil {
		return "", errors.Wrap(ErrMalformedEntry, "computed field without localizer")
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = errors.Wrapf(ErrMalformedEntry, "computed field panicked: %s", fmt.Sprint(r))
		}
	}()

	return f.fn(t), nil
}

// Entry is one searchable catalog item.
type Entry struct {
	// Identifier is matched exactly (case-insensitive) against the query.
	// Extension entries usually leave it empty.
	Identifier string

	// Route is the location the caller navigates to when the entry is chosen.
	Route string

	// Fields holds the named text attributes searched fuzzily.
	Fields map[string]Field
}

// Field returns the named field and whether it is present.
func (e Entry) Field(key string) (Field, bool) {
	f, ok := e.Fields[key]
	return f, ok
}

// MapLocalizer returns a Localizer backed by a fixed message table.
// Keys absent from messages translate to "".
func MapLocalizer(messages map[string]string) Localizer {
	clone := make(map[string]string, len(messages))
	for k, v := range messages {
		clone[k] = v
	}
	return func(key string) string {
		return clone[key]
	}
}
