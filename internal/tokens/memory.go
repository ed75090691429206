package tokens

import "sync"

// MemoryStore keeps tokens in process memory only. Sessions do not survive a
// restart with this backend; useful for tests and throwaway environments.
type MemoryStore struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) SetTokens(accessToken string, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = accessToken
	s.refreshToken = refreshToken
	return nil
}

func (s *MemoryStore) GetAccessToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, nil
}

func (s *MemoryStore) GetRefreshToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken, nil
}

func (s *MemoryStore) ClearTokens() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = ""
	s.refreshToken = ""
	return nil
}

func (s *MemoryStore) Close() error { return nil }
