package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Blob keys under which each collection is persisted. Each value is a JSON
// array of the entity, except KeyCurrentUser which holds a single object.
// The blobs carry no schema version.
const (
	KeyShips         = "fleet_ships"
	KeyTasks         = "fleet_tasks"
	KeyNotifications = "fleet_notifications"
	KeyUsers         = "fleet_users"
	KeyCurrentUser   = "fleet_current_user"
)

// KV is a synchronous blob store keyed by name. Implementations must be
// durable across process restarts for the keys above.
type KV interface {
	// Get returns the stored value and true, or false when key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// LoadList decodes the JSON array stored under key. A missing key yields a
// nil slice and false. A blob that does not parse is returned as an error;
// there is no reset path.
func LoadList[T any](ctx context.Context, kv KV, key string) ([]T, bool, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, true, fmt.Errorf("decoding %s: %w", key, err)
	}
	return items, true, nil
}

// SaveList writes items as a JSON array under key, replacing the previous
// blob. A nil slice is written as an empty array.
func SaveList[T any](ctx context.Context, kv KV, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// LoadValue decodes the JSON object stored under key into v and reports
// whether the key was present.
func LoadValue(ctx context.Context, kv KV, key string, v any) (bool, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

// SaveValue writes v as JSON under key.
func SaveValue(ctx context.Context, kv KV, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
