package server

import "sync"

// maxStoredImages bounds the in-memory image cache. Rendered panels are
// fetched by the chat platform shortly after delivery, so only a small
// working set needs to survive.
const maxStoredImages = 100

// imageStore holds recently rendered images the chat platform fetches by
// URL. Oldest entries are evicted first.
type imageStore struct {
	mu     sync.Mutex
	images map[string][]byte
	order  []string
}

func newImageStore() *imageStore {
	return &imageStore{images: make(map[string][]byte)}
}

func (s *imageStore) put(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.images[name]; !exists {
		s.order = append(s.order, name)
	}
	s.images[name] = data

	for len(s.order) > maxStoredImages {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.images, oldest)
	}
}

func (s *imageStore) get(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.images[name]
	return data, ok
}
