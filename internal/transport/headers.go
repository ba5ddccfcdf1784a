package transport

import (
	"net/http"
)

// Decorator modifies an outgoing request before it is sent.
type Decorator interface {
	Apply(req *http.Request)
}

// Headers sets each header on the request, replacing any existing value.
type Headers map[string]string

// Apply implements the Decorator interface for Headers.
func (h Headers) Apply(req *http.Request) {
	for name, value := range h {
		req.Header.Set(name, value)
	}
}
