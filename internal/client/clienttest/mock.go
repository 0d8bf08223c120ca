// Package clienttest provides a scripted client.Client for tests.
package clienttest

import (
	"context"
	"net/url"
	"sync"

	"github.com/rohmanhakim/atcoder-cli/internal/client"
)

// Call is one recorded request.
type Call struct {
	Method string
	URL    string
	Form   url.Values
	Opts   client.Options
}

// Handler produces the reply for a call.
type Handler func(call Call) (client.Response, error)

// MockClient records every call and answers through Handler.
// A nil Handler answers 200 with an empty body.
type MockClient struct {
	mu      sync.Mutex
	calls   []Call
	Handler Handler
}

func New(handler Handler) *MockClient {
	return &MockClient{Handler: handler}
}

// Static answers every call with body and status 200.
func Static(body string) *MockClient {
	return New(func(Call) (client.Response, error) {
		return client.Response{StatusCode: 200, ContentType: "text/html; charset=utf-8", Body: []byte(body)}, nil
	})
}

// Routes answers by exact URL; unknown URLs get 404.
func Routes(bodies map[string]string) *MockClient {
	return New(func(call Call) (client.Response, error) {
		body, ok := bodies[call.URL]
		if !ok {
			return client.Response{StatusCode: 404, ContentType: "text/html", Body: []byte("not found")}, nil
		}
		return client.Response{StatusCode: 200, ContentType: "text/html; charset=utf-8", Body: []byte(body)}, nil
	})
}

func (m *MockClient) Get(_ context.Context, rawURL string, opts client.Options) (client.Response, error) {
	return m.record(Call{Method: "GET", URL: rawURL, Opts: opts})
}

func (m *MockClient) PostForm(_ context.Context, rawURL string, form url.Values, opts client.Options) (client.Response, error) {
	return m.record(Call{Method: "POST", URL: rawURL, Form: form, Opts: opts})
}

func (m *MockClient) record(call Call) (client.Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	handler := m.Handler
	m.mu.Unlock()

	if handler == nil {
		return client.Response{StatusCode: 200}, nil
	}
	return handler(call)
}

// Calls returns a copy of the recorded history.
func (m *MockClient) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// URLs returns "METHOD url" for each recorded call.
func (m *MockClient) URLs() []string {
	calls := m.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Method + " " + c.URL
	}
	return out
}
