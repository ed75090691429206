package tokens

import (
	"context"
	"crypto/tls"
	"fmt"

	"sessiond/internal/configuration"
	"sessiond/internal/models"

	"github.com/redis/rueidis"
)

// RedisStore keeps the token pair in Redis so several sessiond instances in
// front of the same UI share one session. Keys have no TTL; token lifetime
// is governed by the upstream API, not by the store.
type RedisStore struct {
	client rueidis.Client
}

func NewRedisStore(config models.RedisTokensConfiguration) (*RedisStore, error) {
	clientOption := rueidis.ClientOption{
		InitAddress: config.Hosts,
		Password:    config.Password,
	}

	if config.TLSEnabled {
		clientOption.TLSConfig = &tls.Config{
			ServerName: config.TLSServerName,
			MinVersion: tls.VersionTLS12,
		}
	}

	client, err := rueidis.NewClient(clientOption)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to token store: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) SetTokens(accessToken string, refreshToken string) error {
	ctx := context.Background()

	err := s.client.Do(ctx, s.client.B().Set().Key(configuration.TokenAccessKey).Value(accessToken).Build()).Error()
	if err != nil {
		return err
	}
	return s.client.Do(ctx, s.client.B().Set().Key(configuration.TokenRefreshKey).Value(refreshToken).Build()).Error()
}

func (s *RedisStore) GetAccessToken() (string, error) {
	return s.get(configuration.TokenAccessKey)
}

func (s *RedisStore) GetRefreshToken() (string, error) {
	return s.get(configuration.TokenRefreshKey)
}

func (s *RedisStore) get(key string) (string, error) {
	ctx := context.Background()
	value, err := s.client.Do(ctx, s.client.B().Get().Key(key).Build()).ToString()
	if rueidis.IsRedisNil(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *RedisStore) ClearTokens() error {
	ctx := context.Background()
	return s.client.Do(ctx,
		s.client.B().Del().Key(configuration.TokenAccessKey, configuration.TokenRefreshKey).Build()).Error()
}

func (s *RedisStore) Close() error {
	s.client.Close()
	return nil
}
