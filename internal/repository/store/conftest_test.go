package store

import (
	"context"
	"maps"
	"testing"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hashes     map[string]map[string]string
	hsetFn     func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn  func(ctx context.Context, key string) (map[string]string, error)
	hreplaceFn func(ctx context.Context, key string, fields map[string]string) error
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	if m.hashes[key] == nil {
		m.hashes[key] = make(map[string]string)
	}
	maps.Copy(m.hashes[key], fields)
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return maps.Clone(m.hashes[key]), nil
}

func (m *mockStore) HReplace(ctx context.Context, key string, fields map[string]string) error {
	if m.hreplaceFn != nil {
		return m.hreplaceFn(ctx, key, fields)
	}
	m.hashes[key] = maps.Clone(fields)
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{hashes: make(map[string]map[string]string)}
	return New(ms, "storefront"), ms
}
