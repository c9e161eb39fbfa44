// Package mcpserver exposes a finder.Finder as a Model Context Protocol
// server.
//
// Two tools are registered:
//   - search_settings: runs one query and returns the ordered matches
//   - list_settings: returns the whole current catalog
//
// Entries are returned with their fields resolved through the finder's
// localizer, so clients never see unresolved message keys.
//
// Example usage:
//
//	srv := mcpserver.New(f, mcpserver.Config{
//	    ServerInfo: mcpserver.ServerInfo{Name: "settings", Version: "1.0.0"},
//	})
//	if err := srv.ServeStdio(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// HTTPHandler serves the same tools over streamable HTTP.
package mcpserver
