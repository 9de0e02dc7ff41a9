// Package cache implements TTL primitives over the persistent key-value
// store. Two things in the client share a 24-hour duration but are otherwise
// unrelated: the cached recommendation snapshot and the meal-selection lock.
// Modeling both as named instances of these types keeps the two windows
// visibly independent.
package cache

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"grocidish-client/infrastructure/storage"
)

// DefaultTTL is the 24-hour duration both windows use.
const DefaultTTL = 24 * time.Hour

// TTLCache is a single cached payload paired with a write timestamp,
// considered valid only within ttl of that timestamp. Storage failures on
// the read path degrade to a cache miss.
type TTLCache struct {
	store        storage.KeyValueStore
	valueKey     string
	timestampKey string
	ttl          time.Duration
	logger       *zap.Logger
	now          func() time.Time
}

// NewTTLCache creates a TTL cache over the given storage keys.
func NewTTLCache(store storage.KeyValueStore, valueKey, timestampKey string, ttl time.Duration, logger *zap.Logger) *TTLCache {
	return &TTLCache{
		store:        store,
		valueKey:     valueKey,
		timestampKey: timestampKey,
		ttl:          ttl,
		logger:       logger,
		now:          time.Now,
	}
}

// Load returns the cached payload if both the payload and a fresh timestamp
// are present. A missing, stale, or unreadable entry is a miss.
func (c *TTLCache) Load(ctx context.Context) (string, bool) {
	value, found, err := c.store.Get(ctx, c.valueKey)
	if err != nil {
		c.logger.Warn("Cache read failed, treating as miss",
			zap.String("key", c.valueKey), zap.Error(err))
		return "", false
	}
	if !found {
		return "", false
	}

	raw, found, err := c.store.Get(ctx, c.timestampKey)
	if err != nil {
		c.logger.Warn("Cache timestamp read failed, treating as miss",
			zap.String("key", c.timestampKey), zap.Error(err))
		return "", false
	}
	if !found {
		return "", false
	}

	written, ok := parseMillis(raw)
	if !ok {
		c.logger.Warn("Cache timestamp is malformed, treating as miss",
			zap.String("key", c.timestampKey), zap.String("raw", raw))
		return "", false
	}

	if c.now().Sub(written) >= c.ttl {
		return "", false
	}

	return value, true
}

// Store writes the payload and stamps it with the current time.
func (c *TTLCache) Store(ctx context.Context, value string) error {
	if err := c.store.Set(ctx, c.valueKey, value); err != nil {
		return err
	}
	return c.store.Set(ctx, c.timestampKey, formatMillis(c.now()))
}

// Invalidate removes both the payload and its timestamp.
func (c *TTLCache) Invalidate(ctx context.Context) error {
	if err := c.store.Remove(ctx, c.valueKey); err != nil {
		return err
	}
	return c.store.Remove(ctx, c.timestampKey)
}

// SetClock overrides the cache's time source. Test hook.
func (c *TTLCache) SetClock(now func() time.Time) {
	c.now = now
}

// Window is a persisted timestamp that opens a fixed-duration window when
// touched. Used for the meal-selection lock.
type Window struct {
	store    storage.KeyValueStore
	key      string
	duration time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewWindow creates a window over the given storage key.
func NewWindow(store storage.KeyValueStore, key string, duration time.Duration, logger *zap.Logger) *Window {
	return &Window{
		store:    store,
		key:      key,
		duration: duration,
		logger:   logger,
		now:      time.Now,
	}
}

// Touch stamps the window with the current time.
func (w *Window) Touch(ctx context.Context) error {
	return w.store.Set(ctx, w.key, formatMillis(w.now()))
}

// Active reports whether the window was touched within its duration.
// Storage failures and malformed stamps report inactive.
func (w *Window) Active(ctx context.Context) bool {
	raw, found, err := w.store.Get(ctx, w.key)
	if err != nil {
		w.logger.Warn("Window read failed, treating as inactive",
			zap.String("key", w.key), zap.Error(err))
		return false
	}
	if !found {
		return false
	}

	touched, ok := parseMillis(raw)
	if !ok {
		return false
	}

	return w.now().Sub(touched) < w.duration
}

// SetClock overrides the window's time source. Test hook.
func (w *Window) SetClock(now func() time.Time) {
	w.now = now
}

// Timestamps are persisted as decimal Unix milliseconds, the format the
// mobile shell's storage carries, so an imported store file stays readable.
func formatMillis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func parseMillis(raw string) (time.Time, bool) {
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}
