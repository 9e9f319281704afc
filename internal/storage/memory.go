package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// MemoryStore is an in-memory BlobStore used by tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
	types   map[string]string

	// FailPut, when set, makes the next Put calls fail. Tests use it to
	// exercise compensation paths.
	FailPut    bool
	FailCopy   bool
	FailDelete bool

	puts    int
	deletes int
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (s *MemoryStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailPut {
		return fmt.Errorf("memory store: put failure injected")
	}
	s.objects[key] = data
	s.types[key] = contentType
	s.puts++
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("memory store: object %s not found", key)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemoryStore) Copy(ctx context.Context, srcKey, dstKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailCopy {
		return fmt.Errorf("memory store: copy failure injected")
	}
	data, ok := s.objects[srcKey]
	if !ok {
		return fmt.Errorf("memory store: object %s not found", srcKey)
	}
	dup := make([]byte, len(data))
	copy(dup, data)
	s.objects[dstKey] = dup
	s.types[dstKey] = s.types[srcKey]
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailDelete {
		return fmt.Errorf("memory store: delete failure injected")
	}
	delete(s.objects, key)
	delete(s.types, key)
	s.deletes++
	return nil
}

func (s *MemoryStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.objects[key]; !ok {
		return "", fmt.Errorf("memory store: object %s not found", key)
	}
	return fmt.Sprintf("memory://%s?expires=%d", key, time.Now().Add(ttl).Unix()), nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Has reports whether an object exists for key.
func (s *MemoryStore) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok
}

// Len returns the number of stored objects.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// PutCount returns how many successful Put calls happened.
func (s *MemoryStore) PutCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.puts
}

var _ BlobStore = (*MemoryStore)(nil)
var _ BlobStore = (*MinioStore)(nil)
