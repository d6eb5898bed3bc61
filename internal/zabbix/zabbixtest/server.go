// Package zabbixtest provides an in-memory Zabbix JSON-RPC endpoint for tests.
package zabbixtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

const Token = "0424bd59b807674191e7d77572075f33"

// Call is one request received by the server.
type Call struct {
	Method        string
	Params        map[string]any
	Auth          string
	Authorization string
}

// Handler answers one method. Returning a non-nil *Error sends a JSON-RPC
// error object instead of a result.
type Handler func(params map[string]any) (any, *Error)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data"`
}

// Server records calls and dispatches them to per-method handlers.
// user.login and user.logout are answered by default.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	calls    []Call
	handlers map[string]Handler
}

func NewServer() *Server {
	s := &Server{
		handlers: map[string]Handler{
			"user.login": func(map[string]any) (any, *Error) {
				return Token, nil
			},
			"user.logout": func(map[string]any) (any, *Error) {
				return true, nil
			},
		},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))

	return s
}

// Handle registers the handler for method, replacing any previous one.
func (s *Server) Handle(method string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[method] = h
}

// Calls returns the calls received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Call(nil), s.calls...)
}

// Count returns how many times method was called.
func (s *Server) Count(method string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Method == method {
			n++
		}
	}

	return n
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	if !strings.HasSuffix(r.URL.Path, "/api_jsonrpc.php") {
		http.NotFound(w, r)
		return
	}

	var req struct {
		Method string         `json:"method"`
		Params json.RawMessage `json:"params"`
		ID     uint64         `json:"id"`
		Auth   string         `json:"auth"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := map[string]any{}
	_ = json.Unmarshal(req.Params, &params)

	s.mu.Lock()
	s.calls = append(s.calls, Call{
		Method:        req.Method,
		Params:        params,
		Auth:          req.Auth,
		Authorization: r.Header.Get("Authorization"),
	})
	h, ok := s.handlers[req.Method]
	s.mu.Unlock()

	res := map[string]any{"jsonrpc": "2.0", "id": req.ID}
	if !ok {
		res["error"] = Error{Code: -32601, Message: "Method not found.", Data: req.Method}
	} else if result, rpcErr := h(params); rpcErr != nil {
		res["error"] = rpcErr
	} else {
		res["result"] = result
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(res)
}
