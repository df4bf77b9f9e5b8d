// Package fbztest runs a fake tracker endpoint for tests: canned XML per
// command, with every received parameter set captured for assertions.
package fbztest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Server is a fake tracker API listening on a local port.
type Server struct {
	mu        sync.Mutex
	responses map[string]string
	requests  []url.Values
	httpSrv   *httptest.Server
}

// New starts the fake server. Commands without a canned response get an
// empty response document.
func New() *Server {
	s := &Server{responses: map[string]string{}}
	r := chi.NewRouter()
	r.Get("/api.asp", s.handle)
	s.httpSrv = httptest.NewServer(r)
	return s
}

// URL is the fake endpoint base, suitable for transport.New.
func (s *Server) URL() string {
	return s.httpSrv.URL
}

// Close shuts the fake server down.
func (s *Server) Close() {
	s.httpSrv.Close()
}

// Respond registers the XML body returned for one command.
func (s *Server) Respond(cmd, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[cmd] = body
}

// Requests returns every parameter set received so far, in arrival order.
func (s *Server) Requests() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]url.Values, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent parameter set, or nil.
func (s *Server) LastRequest() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	return s.requests[len(s.requests)-1]
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	s.mu.Lock()
	s.requests = append(s.requests, params)
	body, ok := s.responses[params.Get("cmd")]
	s.mu.Unlock()

	if !ok {
		body = `<response></response>`
	}
	w.Header().Set("Content-Type", "text/xml")
	_, _ = w.Write([]byte(body))
}
