package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Alijeyrad/clinic_console/pkg/constants"
	"github.com/Alijeyrad/clinic_console/pkg/crypto"
)

// Storage is the durable home of the bearer token. Load returns an empty
// string when nothing has been saved.
type Storage interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// ---------------------------------------------------------------------------
// File
// ---------------------------------------------------------------------------

// DefaultPath is <user config dir>/clinic/clinic_token.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(dir, constants.AppName, constants.TokenStorageKey), nil
}

// FileStorage keeps the token in a single 0600 file. With a sealer the
// file holds the sealed envelope instead of the token.
type FileStorage struct {
	path   string
	sealer *crypto.Sealer
}

// SealPurpose is the associated data bound into sealed token files.
const SealPurpose = "clinic session token"

func NewFileStorage(path string, sealer *crypto.Sealer) *FileStorage {
	return &FileStorage{path: path, sealer: sealer}
}

func (f *FileStorage) Path() string { return f.path }

// Load accepts a plain token even when a sealer is configured, so enabling
// encryption does not end an existing session; the next Save seals it.
func (f *FileStorage) Load(_ context.Context) (string, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}

	content := strings.TrimSpace(string(raw))
	if !crypto.IsSealed(content) {
		return content, nil
	}
	if f.sealer == nil {
		return "", fmt.Errorf("token file %s is sealed: set session.encryption_key", f.path)
	}
	token, err := f.sealer.Open(content)
	if err != nil {
		return "", fmt.Errorf("unseal token file: %w", err)
	}
	return token, nil
}

func (f *FileStorage) Save(_ context.Context, token string) error {
	content := token
	if f.sealer != nil {
		sealed, err := f.sealer.Seal(token)
		if err != nil {
			return fmt.Errorf("seal token: %w", err)
		}
		content = sealed
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(f.path, []byte(content+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

func (f *FileStorage) Clear(_ context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Redis
// ---------------------------------------------------------------------------

// RedisStorage shares one token between every console pointed at the same
// Redis database.
type RedisStorage struct {
	rdb *goredis.Client
	key string
}

func NewRedisStorage(rdb *goredis.Client) *RedisStorage {
	return &RedisStorage{rdb: rdb, key: constants.TokenStorageKey}
}

func (r *RedisStorage) Load(ctx context.Context) (string, error) {
	token, err := r.rdb.Get(ctx, r.key).Result()
	if err == goredis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get token: %w", err)
	}
	return token, nil
}

func (r *RedisStorage) Save(ctx context.Context, token string) error {
	if err := r.rdb.Set(ctx, r.key, token, 0).Err(); err != nil {
		return fmt.Errorf("redis set token: %w", err)
	}
	return nil
}

func (r *RedisStorage) Clear(ctx context.Context) error {
	if err := r.rdb.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis del token: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Memory
// ---------------------------------------------------------------------------

type MemoryStorage struct {
	mu    sync.Mutex
	token string
}

func (m *MemoryStorage) Load(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryStorage) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStorage) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
