package jsonrpc

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbiish/mcp-calc-tools/internal/mcpconst"
)

func testRequester(ctx context.Context, method string, url string, body io.Reader) (*http.Request, error) {
	return httptest.NewRequest(method, url, body), nil
}

func TestNewJSONRPCRequest(t *testing.T) {
	assert := assert.New(t)

	req, err := NewJSONRPCRequest(context.Background(), "/mcp", mcpconst.ToolsCall,
		map[string]any{"name": "riemann_integral"},
		map[string]string{mcpconst.MCP_SESSION_ID_HEADER: "abc123"}, testRequester)
	require.NoError(t, err)

	assert.Equal(http.MethodPost, req.Method)
	assert.Equal("application/json", req.Header.Get("Content-Type"))
	assert.Equal("abc123", req.Header.Get(mcpconst.MCP_SESSION_ID_HEADER))

	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)

	var rpcReq jsonrpc2.Request
	require.NoError(t, json.Unmarshal(body, &rpcReq))
	assert.Equal(string(mcpconst.ToolsCall), rpcReq.Method)
	assert.False(rpcReq.Notif)
	require.NotNil(t, rpcReq.Params)

	var params map[string]any
	require.NoError(t, json.Unmarshal(*rpcReq.Params, &params))
	assert.Equal("riemann_integral", params["name"])
}

func TestNewJSONRPCRequestNotification(t *testing.T) {
	req, err := NewJSONRPCRequest(context.Background(), "/mcp",
		mcpconst.NotificationsInitialized, nil, nil, testRequester)
	require.NoError(t, err)

	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)

	var rpcReq jsonrpc2.Request
	require.NoError(t, json.Unmarshal(body, &rpcReq))
	assert.True(t, rpcReq.Notif)
	assert.Nil(t, rpcReq.Params)
}

func TestDoRequestParsesJSONBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"ok":true}}`))
	}))
	defer ts.Close()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, ts.URL, nil)
	require.NoError(t, err)

	resp, httpResp, err := DoRequest(context.Background(), ts.Client(), req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, httpResp.StatusCode)

	var result map[string]any
	require.NoError(t, UnmarshalResult(resp, &result))
	assert.Equal(t, true, result["ok"])
}

func TestDoRequestParsesSSEBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("event: message\ndata: {\"jsonrpc\":\"2.0\",\"id\":2,\"result\":{\"n\":3}}\n\n"))
	}))
	defer ts.Close()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, ts.URL, nil)
	require.NoError(t, err)

	resp, _, err := DoRequest(context.Background(), ts.Client(), req)
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, UnmarshalResult(resp, &result))
	assert.EqualValues(t, 3, result["n"].(float64))
}

func TestDoRequestNon2xxIsAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer ts.Close()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, ts.URL, nil)
	require.NoError(t, err)

	_, httpResp, err := DoRequest(context.Background(), ts.Client(), req)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpResp.StatusCode)
}
