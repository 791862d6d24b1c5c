package posts

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"daysgrimm-api/core/interfaces"
)

// mockResponse implements interfaces.Response around a string body.
type mockResponse struct {
	status  int
	body    string
	headers map[string]string
}

func (r *mockResponse) StatusCode() int { return r.status }

func (r *mockResponse) Body() io.ReadCloser { return io.NopCloser(strings.NewReader(r.body)) }

func (r *mockResponse) Header(key string) string { return r.headers[key] }

// mockHTTPClient routes requests through a function field and records every
// requested URL with the User-Agent it carried.
type mockHTTPClient struct {
	getFunc func(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error)

	calls      []string
	userAgents []string
}

func (m *mockHTTPClient) Get(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error) {
	m.calls = append(m.calls, url)
	m.userAgents = append(m.userAgents, headers["User-Agent"])
	if m.getFunc != nil {
		return m.getFunc(ctx, url, headers)
	}
	return &mockResponse{status: 200, body: "{}"}, nil
}

// mockCache is an in-memory mock of the Cache interface. Values round-trip
// through JSON the way the real cache serializes them.
type mockCache struct {
	entries map[string][]byte

	setCalls int
	getCalls int
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string][]byte)}
}

func (m *mockCache) Set(prefix string, key string, value interface{}, expiration time.Duration) error {
	m.setCalls++
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[prefix+":"+key] = data
	return nil
}

func (m *mockCache) Get(prefix string, key string, dest interface{}) error {
	m.getCalls++
	data, ok := m.entries[prefix+":"+key]
	if !ok {
		return interfaces.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (m *mockCache) Delete(prefix string, key string) error {
	delete(m.entries, prefix+":"+key)
	return nil
}

func (m *mockCache) Count() (int64, error) {
	return int64(len(m.entries)), nil
}

// mockLogger is a no-op Logger that records messages
type mockLogger struct {
	messages []string
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) { m.messages = append(m.messages, msg) }
func (m *mockLogger) Info(msg string, fields map[string]interface{})  { m.messages = append(m.messages, msg) }
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.messages = append(m.messages, msg) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) { m.messages = append(m.messages, msg) }
