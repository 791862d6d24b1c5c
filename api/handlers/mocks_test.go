package handlers

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"daysgrimm-api/core/episodes"
	"daysgrimm-api/core/interfaces"
)

// stubResponse implements interfaces.Response around a string body.
type stubResponse struct {
	status int
	body   string
}

func (r *stubResponse) StatusCode() int { return r.status }

func (r *stubResponse) Body() io.ReadCloser { return io.NopCloser(strings.NewReader(r.body)) }

func (r *stubResponse) Header(key string) string { return "" }

// stubHTTPClient routes requests through a function field.
type stubHTTPClient struct {
	getFunc func(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error)

	calls []string
}

func (m *stubHTTPClient) Get(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error) {
	m.calls = append(m.calls, url)
	if m.getFunc != nil {
		return m.getFunc(ctx, url, headers)
	}
	return &stubResponse{status: 200, body: "{}"}, nil
}

// stubCache is an in-memory Cache with JSON round-tripping.
type stubCache struct {
	entries map[string][]byte
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string][]byte)}
}

func (m *stubCache) Set(prefix string, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[prefix+":"+key] = data
	return nil
}

func (m *stubCache) Get(prefix string, key string, dest interface{}) error {
	data, ok := m.entries[prefix+":"+key]
	if !ok {
		return interfaces.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (m *stubCache) Delete(prefix string, key string) error {
	delete(m.entries, prefix+":"+key)
	return nil
}

func (m *stubCache) Count() (int64, error) {
	return int64(len(m.entries)), nil
}

// stubLogger discards everything
type stubLogger struct{}

func (stubLogger) Debug(msg string, fields map[string]interface{}) {}
func (stubLogger) Info(msg string, fields map[string]interface{})  {}
func (stubLogger) Warn(msg string, fields map[string]interface{})  {}
func (stubLogger) Error(msg string, fields map[string]interface{}) {}

// stubVideoSource is a function-field episodes.VideoSource.
type stubVideoSource struct {
	channelIDForUsernameFunc func(ctx context.Context, username string) (string, error)
	searchChannelByNameFunc  func(ctx context.Context, query string) (string, error)
	searchVideosFunc         func(ctx context.Context, channelID string, facet episodes.SearchFacet, publishedAfter time.Time, maxResults int64) ([]episodes.Candidate, error)
	videoDetailsFunc         func(ctx context.Context, ids []string) ([]episodes.VideoDetails, error)
}

func (m *stubVideoSource) ChannelIDForUsername(ctx context.Context, username string) (string, error) {
	if m.channelIDForUsernameFunc != nil {
		return m.channelIDForUsernameFunc(ctx, username)
	}
	return "", nil
}

func (m *stubVideoSource) SearchChannelByName(ctx context.Context, query string) (string, error) {
	if m.searchChannelByNameFunc != nil {
		return m.searchChannelByNameFunc(ctx, query)
	}
	return "", nil
}

func (m *stubVideoSource) SearchVideos(ctx context.Context, channelID string, facet episodes.SearchFacet, publishedAfter time.Time, maxResults int64) ([]episodes.Candidate, error) {
	if m.searchVideosFunc != nil {
		return m.searchVideosFunc(ctx, channelID, facet, publishedAfter, maxResults)
	}
	return nil, nil
}

func (m *stubVideoSource) VideoDetails(ctx context.Context, ids []string) ([]episodes.VideoDetails, error) {
	if m.videoDetailsFunc != nil {
		return m.videoDetailsFunc(ctx, ids)
	}
	return nil, nil
}
