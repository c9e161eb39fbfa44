// Package catalog assembles the searchable set of settings entries.
//
// A catalog is rebuilt, never mutated, whenever its sources change. It is the
// concatenation of a static [Registry] (insertion ordered, unique keys) and an
// optional list of extension entries contributed at runtime by plugins.
//
// # Entries and Fields
//
// Each [Entry] carries an optional identifier used for exact matching and a
// set of named text fields used for fuzzy matching. A [Field] is either a
// literal string or a computed value derived from a [Localizer]:
//
//	reg := catalog.NewRegistry()
//	_ = reg.Add("general", catalog.Entry{
//	    Identifier: "general",
//	    Route:      "/settings/general",
//	    Fields: map[string]catalog.Field{
//	        catalog.KeyTab:         catalog.Message("general"),
//	        catalog.KeySection:     catalog.Message("currencyConversion"),
//	        catalog.KeyDescription: catalog.Literal("Convert balances to fiat"),
//	    },
//	})
//
//	cat := catalog.Build(reg, extensions.Entries())
//
// Computed fields are resolved with [Field.Resolve]. A computed field whose
// function panics, or which has no localizer to call, resolves to
// [ErrMalformedEntry]; callers treat such a field as non-matching.
//
// # Extensions
//
// [InMemoryExtensions] holds plugin-contributed entries grouped by source ID
// and notifies listeners on every change so the owner can rebuild its catalog.
//
// # Thread Safety
//
// Catalog values and registries are not synchronized; build them once and share
// read-only. InMemoryExtensions is safe for concurrent use.
package catalog
