package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is the MCP server version.
const Version = "0.1.0"

// shutdownTimeout bounds how long RunHTTP waits for open sessions.
const shutdownTimeout = 5 * time.Second

// Server exposes field extraction and stored records over MCP.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports. Tools and
// resources backed by an optional port are only registered when it is set.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(
			&mcp.Implementation{Name: "marcfields", Version: Version},
			&mcp.ServerOptions{Instructions: instructions(ports)},
		),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// instructions tells a client what the server can do with the ports it has.
func instructions(ports *Ports) string {
	var b strings.Builder
	b.WriteString("marcfields turns danMARC2 records in MARCXchange XML into ordered " +
		"search index fields named marc.<tag><subfield>, rec.* and term.*.\n")
	b.WriteString("Call extract_fields with the record XML to see the fields it produces.\n")
	if ports.Records != nil {
		b.WriteString("Call get_record with an id of the form <001a>:<001b>, or read " +
			uriScheme + "records/{recordId}, for fields already indexed.\n")
	}
	if ports.Rules != nil {
		b.WriteString("Read " + uriScheme + "rules for the tag and subfield mapping in use.\n")
	}
	return b.String()
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the streamable HTTP handler serving this server.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// RunHTTP serves MCP over streamable HTTP on addr until the context is
// cancelled, then drains open sessions for up to shutdownTimeout.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving mcp on %s: %w", addr, err)
	}
	return nil
}
