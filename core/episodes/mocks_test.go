package episodes

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"daysgrimm-api/core/interfaces"
)

// mockVideoSource is a mock implementation of the VideoSource interface.
// Facet searches run concurrently, so the call counter is guarded.
type mockVideoSource struct {
	channelIDForUsernameFunc func(ctx context.Context, username string) (string, error)
	searchChannelByNameFunc  func(ctx context.Context, query string) (string, error)
	searchVideosFunc         func(ctx context.Context, channelID string, facet SearchFacet, publishedAfter time.Time, maxResults int64) ([]Candidate, error)
	videoDetailsFunc         func(ctx context.Context, ids []string) ([]VideoDetails, error)

	mu           sync.Mutex
	searchCalls  int
	detailsCalls int
}

func (m *mockVideoSource) ChannelIDForUsername(ctx context.Context, username string) (string, error) {
	if m.channelIDForUsernameFunc != nil {
		return m.channelIDForUsernameFunc(ctx, username)
	}
	return "", nil
}

func (m *mockVideoSource) SearchChannelByName(ctx context.Context, query string) (string, error) {
	if m.searchChannelByNameFunc != nil {
		return m.searchChannelByNameFunc(ctx, query)
	}
	return "", nil
}

func (m *mockVideoSource) SearchVideos(ctx context.Context, channelID string, facet SearchFacet, publishedAfter time.Time, maxResults int64) ([]Candidate, error) {
	m.mu.Lock()
	m.searchCalls++
	m.mu.Unlock()
	if m.searchVideosFunc != nil {
		return m.searchVideosFunc(ctx, channelID, facet, publishedAfter, maxResults)
	}
	return nil, nil
}

func (m *mockVideoSource) VideoDetails(ctx context.Context, ids []string) ([]VideoDetails, error) {
	m.mu.Lock()
	m.detailsCalls++
	m.mu.Unlock()
	if m.videoDetailsFunc != nil {
		return m.videoDetailsFunc(ctx, ids)
	}
	return nil, nil
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
