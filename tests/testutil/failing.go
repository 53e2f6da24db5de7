package testutil

import (
	"context"

	"github.com/nhle/fleet-maintenance/internal/store"
)

// FailingKV is a KV whose writes fail once Fail is set.
type FailingKV struct {
	*store.MemoryKV
	Fail error
}

// NewFailingKV wraps an empty MemoryKV.
func NewFailingKV() *FailingKV {
	return &FailingKV{MemoryKV: store.NewMemoryKV()}
}

func (f *FailingKV) Set(ctx context.Context, key string, value []byte) error {
	if f.Fail != nil {
		return f.Fail
	}
	return f.MemoryKV.Set(ctx, key, value)
}

func (f *FailingKV) Delete(ctx context.Context, key string) error {
	if f.Fail != nil {
		return f.Fail
	}
	return f.MemoryKV.Delete(ctx, key)
}
