package storage

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var ErrObjectNotFound = errors.New("object not found")

// ObjectStore abstracts the backing blob store. The concrete store is an
// external collaborator; anything that can keep bytes under a path and
// hand back a retrievable URL satisfies it.
type ObjectStore interface {
	Upload(ctx context.Context, path, contentType string, data []byte) (string, error)
	Download(ctx context.Context, path string) ([]byte, error)
	Delete(ctx context.Context, path string) error
	GetURL(ctx context.Context, path string) (string, error)
}

// MemoryStore backs local development and tests.
type MemoryStore struct {
	baseURL string
	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	contentType string
	data        []byte
}

func NewMemoryStore(baseURL string) *MemoryStore {
	if baseURL == "" {
		baseURL = "https://storage.example"
	}
	return &MemoryStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: map[string]memoryObject{},
	}
}

func (m *MemoryStore) Upload(_ context.Context, path, contentType string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	m.objects[path] = memoryObject{contentType: contentType, data: stored}
	return m.url(path), nil
}

func (m *MemoryStore) Download(_ context.Context, path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[path]
	if !ok {
		return nil, ErrObjectNotFound
	}
	data := make([]byte, len(obj.data))
	copy(data, obj.data)
	return data, nil
}

func (m *MemoryStore) Delete(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[path]; !ok {
		return ErrObjectNotFound
	}
	delete(m.objects, path)
	return nil
}

func (m *MemoryStore) GetURL(_ context.Context, path string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.objects[path]; !ok {
		return "", ErrObjectNotFound
	}
	return m.url(path), nil
}

func (m *MemoryStore) url(path string) string {
	return m.baseURL + "/" + strings.TrimLeft(path, "/")
}
