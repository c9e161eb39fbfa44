package search

import (
	"go.uber.org/zap"

	"github.com/jonwraymond/settingsearch/catalog"
	"github.com/jonwraymond/settingsearch/fuzzy"
)

// resolveDocuments resolves keys of every entry once for one pass. Document
// IDs are catalog positions and Fields align with keys. Missing or malformed
// fields are left empty.
func resolveDocuments(cat catalog.Catalog, keys []string, t catalog.Localizer, logger *zap.Logger) []fuzzy.Document {
	docs := make([]fuzzy.Document, len(cat))
	for i, e := range cat {
		fields := make([]string, len(keys))
		for k, key := range keys {
			f, ok := e.Field(key)
			if !ok {
				continue
			}
			text, err := f.Resolve(t)
			if err != nil {
				logger.Debug("skipping malformed field",
					zap.Int("entry", i),
					zap.String("identifier", e.Identifier),
					zap.String("field", key),
					zap.Error(err),
				)
				continue
			}
			fields[k] = text
		}
		docs[i] = fuzzy.Document{ID: i, Fields: fields}
	}
	return docs
}
