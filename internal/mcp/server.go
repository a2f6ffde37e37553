package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"redpulse/internal/direct"
	"redpulse/internal/redmine"
	"redpulse/internal/snapshot"

	"github.com/rs/zerolog/log"
)

// JSONRPCRequest represents a standard MCP/JSON-RPC request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a standard MCP/JSON-RPC response.
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// Server holds the state for the MCP server. Analytics tools answer from
// the snapshot cache by default and from the direct engine when the
// caller passes fresh=true.
type Server struct {
	cache  *snapshot.Cache
	engine *direct.Engine
	client redmine.Client

	in  io.Reader
	out io.Writer
}

// NewServer creates a new MCP server over Stdio.
func NewServer(cache *snapshot.Cache, engine *direct.Engine, client redmine.Client) *Server {
	return &Server{
		cache:  cache,
		engine: engine,
		client: client,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// Serve starts the JSON-RPC loop. stdout carries protocol frames only;
// all logging goes through the logging package's sinks.
func (s *Server) Serve() error {
	reader := bufio.NewReader(s.in)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		var req JSONRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal request")
			continue
		}

		resp := s.handleRequest(req)
		out, _ := json.Marshal(resp)
		fmt.Fprintf(s.out, "%s\n", out)
	}
}

func (s *Server) handleRequest(req JSONRPCRequest) JSONRPCResponse {
	var result interface{}
	var errRes interface{}

	switch req.Method {
	case "initialize":
		result = map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities":    map[string]interface{}{},
			"serverInfo": map[string]interface{}{
				"name":    "redpulse",
				"version": "0.1.0",
			},
		}
	case "tools/list":
		result = s.listTools()
	case "tools/call":
		result, errRes = s.callTool(req.Params)
	default:
		errRes = map[string]interface{}{
			"code":    -32601,
			"message": fmt.Sprintf("Method %s not found", req.Method),
		}
	}

	return JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
		Error:   errRes,
	}
}

func (s *Server) formatResult(data interface{}) string {
	out, _ := json.MarshalIndent(data, "", "  ")
	return string(out)
}
