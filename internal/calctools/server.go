// Package calctools wires the integration engine and the option pricing
// formulas into an MCP tool surface.
package calctools

import (
	"math/rand"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const serverVersion = "0.1.0"

type ProvidedTool struct {
	tool    mcp.Tool
	handler server.ToolHandlerFunc
}

func (pt ProvidedTool) GetName() string {
	return pt.tool.Name
}

// Toolbox carries the dependencies the handlers need. The random source
// factory is explicit so tests can substitute a deterministic one; there is
// no package-level server or RNG.
type Toolbox struct {
	newRand func(seed int64) *rand.Rand
}

func NewToolbox() *Toolbox {
	return &Toolbox{
		newRand: func(seed int64) *rand.Rand { return rand.New(rand.NewSource(seed)) },
	}
}

// NewMCPServer builds the MCP server with every calculation tool registered.
func NewMCPServer(serverName string) *server.MCPServer {
	s := server.NewMCPServer(serverName,
		serverVersion,
		server.WithToolCapabilities(true),
	)
	for _, pt := range NewToolbox().Tools() {
		s.AddTool(pt.tool, pt.handler)
	}
	return s
}

// RunCalcServer returns the streamable HTTP handler serving the calculation
// tools under the given endpoint path.
func RunCalcServer(serverName string, uri string) http.Handler {
	return server.NewStreamableHTTPServer(NewMCPServer(serverName), server.WithEndpointPath(uri))
}
