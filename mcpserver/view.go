package mcpserver

import (
	"github.com/jonwraymond/settingsearch/catalog"
)

// EntryView is an entry with its fields resolved to text.
type EntryView struct {
	Identifier string            `json:"identifier,omitempty" jsonschema:"stable identifier of a built-in setting"`
	Route      string            `json:"route" jsonschema:"navigation target of the setting"`
	Fields     map[string]string `json:"fields,omitempty" jsonschema:"resolved text fields by key"`
}

// SearchInput is the search_settings argument.
type SearchInput struct {
	Query string `json:"query" jsonschema:"raw search text as typed by the user"`
}

// SearchOutput is the search_settings result.
type SearchOutput struct {
	Query   string      `json:"query" jsonschema:"sanitized query"`
	State   string      `json:"state" jsonschema:"muted when the sanitized query is empty, otherwise active"`
	Exact   int         `json:"exact" jsonschema:"number of leading results that matched an identifier exactly"`
	Results []EntryView `json:"results"`
}

// ListOutput is the list_settings result.
type ListOutput struct {
	Entries []EntryView `json:"entries"`
}

// viewEntries resolves entries for output. Fields that fail to resolve or
// resolve to "" are left out.
func viewEntries(entries []catalog.Entry, keys []string, t catalog.Localizer) []EntryView {
	out := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		v := EntryView{Identifier: e.Identifier, Route: e.Route}
		for _, k := range keys {
			f, ok := e.Field(k)
			if !ok {
				continue
			}
			text, err := f.Resolve(t)
			if err != nil || text == "" {
				continue
			}
			if v.Fields == nil {
				v.Fields = make(map[string]string, len(keys))
			}
			v.Fields[k] = text
		}
		out = append(out, v)
	}
	return out
}
