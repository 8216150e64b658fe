package mcpconst

import "net/http"

var MCP_SESSION_ID_HEADER = http.CanonicalHeaderKey("mcp-session-id")

// JsonRpcMethod is a typed string for JSON-RPC method names.
type JsonRpcMethod string

// The standard JSON-RPC methods for MCP that the test client speaks.
const (
	Initialize               JsonRpcMethod = "initialize"
	NotificationsInitialized JsonRpcMethod = "notifications/initialized"
	ToolsList                JsonRpcMethod = "tools/list"
	ToolsCall                JsonRpcMethod = "tools/call"
	Ping                     JsonRpcMethod = "ping"
)
