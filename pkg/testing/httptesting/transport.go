package httptesting

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

type RoundTripFunc func(req *http.Request) (*http.Response, error)

// MockTransport dispatches requests to handlers registered by method and URL path.
type MockTransport struct {
	handlers map[string]map[string]RoundTripFunc
}

func (transport *MockTransport) Handle(method, path string, f RoundTripFunc) {
	if transport.handlers == nil {
		transport.handlers = make(map[string]map[string]RoundTripFunc)
	}

	method = strings.ToUpper(method)
	if transport.handlers[method] == nil {
		transport.handlers[method] = make(map[string]RoundTripFunc)
	}

	transport.handlers[method][path] = f
}

func (transport *MockTransport) GET(path string, f RoundTripFunc) {
	transport.Handle(http.MethodGet, path, f)
}

func (transport *MockTransport) POST(path string, f RoundTripFunc) {
	transport.Handle(http.MethodPost, path, f)
}

func (transport *MockTransport) DELETE(path string, f RoundTripFunc) {
	transport.Handle(http.MethodDelete, path, f)
}

func (transport *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f, ok := transport.handlers[strings.ToUpper(req.Method)][req.URL.Path]
	if !ok {
		return nil, errors.Errorf("roundtrip mock to %s %s is not defined", req.Method, req.URL.Path)
	}

	resp, err := f(req)
	if resp != nil && resp.Request == nil {
		resp.Request = req
	}

	return resp, err
}

// NewClient returns an http.Client sending every request through the transport.
func (transport *MockTransport) NewClient() *http.Client {
	return &http.Client{Transport: transport}
}
