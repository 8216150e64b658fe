// Package jsonrpc is a small JSON-RPC-over-HTTP client used to drive the MCP
// server the way a real client would: it frames requests with jsonrpc2 and
// understands both plain JSON and SSE (text/event-stream) response bodies.
package jsonrpc

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/nbiish/mcp-calc-tools/internal/mcpconst"
)

// NewHttpRequester lets the caller choose how the http.Request is built, a
// normal network one or a mock for httptest. Headers and body are handled
// identically either way in NewJSONRPCRequest.
type NewHttpRequester func(ctx context.Context, method string, url string, body io.Reader) (*http.Request, error)

// NewJSONRPCRequest assembles a JSON-RPC request for the given MCP method.
// Methods under "notifications/" are sent as notifications without an ID.
func NewJSONRPCRequest(ctx context.Context, url string, jsonRpcMethod mcpconst.JsonRpcMethod, params any,
	additionalHeaders map[string]string, reqFunc NewHttpRequester) (*http.Request, error) {

	var rawParams *json.RawMessage
	if params != nil {
		paramsMsg, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal params: %w", err)
		}
		rawParams = (*json.RawMessage)(&paramsMsg)
	}

	isNotification := strings.HasPrefix(string(jsonRpcMethod), "notifications/")
	reqBody := &jsonrpc2.Request{
		Method: string(jsonRpcMethod),
		Params: rawParams,
		ID:     jsonrpc2.ID{Num: uint64(rand.Int63())},
		Notif:  isNotification,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("error putting together jsonrpc request: %w", err)
	}

	req, err := reqFunc(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("problem creating new JSONRPC request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	for header, val := range additionalHeaders {
		req.Header.Set(header, val)
	}

	return req, nil
}

// DoRequest sends a JSON-RPC request and parses the response, interpreting
// both standard JSON and SSE formats. A nil response with a nil error means
// the server returned an empty 2xx body (e.g. for a notification).
func DoRequest(ctx context.Context, client *http.Client, req *http.Request) (*jsonrpc2.Response, *http.Response, error) {
	httpResp, err := client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to call mcp server: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		body, _ := io.ReadAll(httpResp.Body)
		_ = httpResp.Body.Close()
		return nil, httpResp, fmt.Errorf("mcp server returned non-2xx status %d: %s", httpResp.StatusCode, string(body))
	}

	contentType := httpResp.Header.Get("Content-Type")
	var respBody []byte

	if strings.Contains(contentType, "text/event-stream") {
		// for SSE, scan for the last "data:" line
		scanner := bufio.NewScanner(httpResp.Body)
		var lastData string
		for scanner.Scan() {
			line := scanner.Text()
			if strings.HasPrefix(line, "data: ") {
				lastData = strings.TrimPrefix(line, "data: ")
			}
		}
		if err := scanner.Err(); err != nil {
			_ = httpResp.Body.Close()
			return nil, httpResp, fmt.Errorf("failed to read mcp server SSE response: %w", err)
		}
		if lastData == "" {
			_ = httpResp.Body.Close()
			return nil, httpResp, nil
		}
		respBody = []byte(lastData)
	} else {
		body, err := io.ReadAll(httpResp.Body)
		if err != nil {
			_ = httpResp.Body.Close()
			return nil, httpResp, fmt.Errorf("failed to read mcp server response: %w", err)
		}
		respBody = body
	}

	_ = httpResp.Body.Close()

	if len(respBody) == 0 {
		return nil, httpResp, nil
	}

	var resp jsonrpc2.Response
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, httpResp, fmt.Errorf("failed to unmarshal mcp server response: %s", string(respBody))
	}

	return &resp, httpResp, nil
}

// UnmarshalResult decodes a JSON-RPC result payload into v, surfacing the
// server-side error if one was returned instead.
func UnmarshalResult(resp *jsonrpc2.Response, v any) error {
	if resp == nil {
		return fmt.Errorf("nil jsonrpc response")
	}
	if resp.Error != nil {
		return fmt.Errorf("jsonrpc error %d: %s", resp.Error.Code, resp.Error.Message)
	}
	if resp.Result == nil {
		return fmt.Errorf("jsonrpc response has no result")
	}
	if err := json.Unmarshal(*resp.Result, v); err != nil {
		return fmt.Errorf("failed to unmarshal jsonrpc result: %w", err)
	}
	return nil
}
