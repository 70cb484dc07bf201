package server

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// codeMethodNotFound is the JSON-RPC error code a client answers with when
// it does not implement roots/list.
const codeMethodNotFound = -32601

// sessionRoots adapts an MCP session to repos.RootSource.
type sessionRoots struct {
	session *mcp.ServerSession
}

// SupportsRoots reports whether the client completed initialisation with a
// capability set. The SDK does not distinguish an absent roots capability
// from an empty one, so ListRoots treats a "method not found" reply as a
// client without roots.
func (s sessionRoots) SupportsRoots() bool {
	if s.session == nil {
		return false
	}
	params := s.session.InitializeParams()
	return params != nil && params.Capabilities != nil
}

func (s sessionRoots) ListRoots(ctx context.Context) ([]string, error) {
	res, err := s.session.ListRoots(ctx, &mcp.ListRootsParams{})
	if err != nil {
		if methodNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	uris := make([]string, 0, len(res.Roots))
	for _, root := range res.Roots {
		uris = append(uris, root.URI)
	}
	return uris, nil
}

// methodNotFound reports whether err carries the JSON-RPC "method not found"
// code. The SDK keeps its wire error type internal, so the code is read back
// from the JSON form of each error in the chain.
func methodNotFound(err error) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		data, mErr := json.Marshal(err)
		if mErr != nil {
			continue
		}
		var wire struct {
			Code int64 `json:"code"`
		}
		if json.Unmarshal(data, &wire) == nil && wire.Code == codeMethodNotFound {
			return true
		}
	}
	return false
}
