package ddvalidate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	valkey "github.com/valkey-io/valkey-go"
)

// redisStore is a shared, cross-process cacheStore tier backed by a
// Valkey-protocol server (spec §4.1, "the cache ... may be consulted by
// many runs concurrently"). Entries are stored with a TTL so a stale
// dictionary never pins a wrong answer indefinitely.
type redisStore struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
}

// RedisStoreConfig configures a shared cache tier.
type RedisStoreConfig struct {
	Address  string
	Username string
	Password string
	DB       int
	// Prefix namespaces keys so multiple dictionaries can share one
	// Valkey instance without colliding.
	Prefix string
	// TTL bounds how long an entry is trusted before the next lookup
	// falls through to the repository again. Defaults to 5 minutes.
	TTL time.Duration
}

// RedisStore dials a Valkey client per cfg and wraps it as a cacheStore
// tier.
func RedisStore(cfg RedisStoreConfig) (*redisStore, error) {
	if cfg.Address == "" {
		return nil, errors.New("ddvalidate: redis cache address required")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}

	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:       []string{cfg.Address},
		Username:          cfg.Username,
		Password:          cfg.Password,
		SelectDB:          cfg.DB,
		AlwaysRESP2:       true,
		ForceSingleClient: true,
		DisableCache:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("ddvalidate: redis client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ddvalidate: redis ping: %w", err)
	}

	return &redisStore{client: client, prefix: cfg.Prefix, ttl: cfg.TTL}, nil
}

func (r *redisStore) key(k string) string {
	if r.prefix == "" {
		return k
	}
	return r.prefix + k
}

func (r *redisStore) get(ctx context.Context, key string) (cacheEntry, bool, error) {
	resp := r.client.Do(ctx, r.client.B().Get().Key(r.key(key)).Build())
	if err := resp.Error(); err != nil {
		if errors.Is(err, valkey.Nil) {
			return cacheEntry{}, false, nil
		}
		return cacheEntry{}, false, ErrCacheUnavailable
	}
	payload, err := resp.AsBytes()
	if err != nil {
		return cacheEntry{}, false, ErrCacheUnavailable
	}
	var entry cacheEntry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return cacheEntry{}, false, ErrCacheUnavailable
	}
	return entry, true, nil
}

func (r *redisStore) set(ctx context.Context, key string, entry cacheEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	cmd := r.client.B().Set().Key(r.key(key)).Value(string(payload)).Px(r.ttl).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return ErrCacheUnavailable
	}
	return nil
}

// Close releases the underlying Valkey client.
func (r *redisStore) Close() {
	r.client.Close()
}
