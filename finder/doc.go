// Package finder is the entry point for settings search.
//
// It combines a static [catalog.Registry], an optional
// [catalog.ExtensionStore] of plugin-contributed entries, a localizer and a
// [search.Matcher] behind one Search call:
//
//	f, err := finder.New(finder.Options{
//	    Registry:   reg,
//	    Extensions: catalog.NewInMemoryExtensions(),
//	    Localizer:  catalog.MapLocalizer(messages),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	res, err := f.Search(inputText)
//
// The catalog is built on first use and cached. Registering or unregistering
// extension entries invalidates the cache; the next Search rebuilds it.
//
// # Thread Safety
//
// All Finder methods are safe for concurrent use.
package finder
