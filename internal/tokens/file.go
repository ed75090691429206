package tokens

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"sessiond/internal/models"
)

type filePayload struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// FileStore persists the token pair as a 0600 JSON file. Writes go through a
// temp file plus rename so a crash mid-write never leaves a torn pair.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(config models.FileTokensConfiguration) (*FileStore, error) {
	dir := filepath.Dir(config.Path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create token directory: %w", err)
	}
	return &FileStore{path: config.Path}, nil
}

func (s *FileStore) SetTokens(accessToken string, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := json.Marshal(filePayload{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal tokens: %w", err)
	}

	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, content, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) GetAccessToken() (string, error) {
	payload, err := s.read()
	if err != nil {
		return "", err
	}
	return payload.AccessToken, nil
}

func (s *FileStore) GetRefreshToken() (string, error) {
	payload, err := s.read()
	if err != nil {
		return "", err
	}
	return payload.RefreshToken, nil
}

func (s *FileStore) ClearTokens() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear token file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) read() (filePayload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payload filePayload
	content, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return payload, nil
	}
	if err != nil {
		return payload, fmt.Errorf("failed to read token file: %w", err)
	}
	if err = json.Unmarshal(content, &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal token file: %w", err)
	}
	return payload, nil
}
