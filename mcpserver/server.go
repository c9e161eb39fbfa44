package mcpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/jonwraymond/settingsearch/finder"
)

// Config configures a Server.
type Config struct {
	// ServerInfo identifies the server during initialization.
	ServerInfo ServerInfo

	// Logger receives debug diagnostics. Default: no-op.
	Logger *zap.Logger
}

// ServerInfo names and versions the server.
type ServerInfo struct {
	Name    string
	Version string
}

// Server serves settings search over MCP.
type Server struct {
	finder *finder.Finder
	server *mcp.Server
	logger *zap.Logger
}

// New creates a Server backed by f and registers its tools.
func New(f *finder.Finder, cfg Config) (*Server, error) {
	if f == nil {
		return nil, ErrNilFinder
	}
	if strings.TrimSpace(cfg.ServerInfo.Name) == "" {
		return nil, errors.Wrap(ErrInvalidConfig, "server name is required")
	}

	s := &Server{
		finder: f,
		logger: cfg.Logger,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    cfg.ServerInfo.Name,
			Version: cfg.ServerInfo.Version,
		}, nil),
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolSearch,
		Description: "Search settings by name or description. Exact identifier matches come first, then fuzzy matches by relevance.",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolList,
		Description: "List every searchable setting in catalog order.",
	}, s.handleList)

	return s, nil
}

// MCP returns the underlying MCP server, for custom transports.
func (s *Server) MCP() *mcp.Server {
	return s.server
}

// ServeStdio runs the server over stdin/stdout.
// Blocks until the client disconnects or ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler returns an http.Handler for the streamable HTTP transport.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}

func (s *Server) handleSearch(ctx context.Context, req *mcp.CallToolRequest, in SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	res, err := s.finder.Search(in.Query)
	if err != nil {
		s.logger.Debug("search failed", zap.String("query", in.Query), zap.Error(err))
		return nil, SearchOutput{}, errors.Mark(err, ErrSearchFailed)
	}

	out := SearchOutput{
		Query:   res.SanitizedQuery,
		State:   res.State().String(),
		Exact:   res.Exact,
		Results: viewEntries(res.Results, s.finder.Matcher().Keys(), s.finder.Localizer()),
	}
	s.logger.Debug("search",
		zap.String("query", out.Query),
		zap.Int("results", len(out.Results)),
	)
	return nil, out, nil
}

func (s *Server) handleList(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, ListOutput, error) {
	cat := s.finder.Catalog()
	return nil, ListOutput{
		Entries: viewEntries(cat, s.finder.Matcher().Keys(), s.finder.Localizer()),
	}, nil
}
