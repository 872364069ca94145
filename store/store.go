// Package store provides the string key-value storage used to keep the
// canvas state between sessions. It plays the part of the browser's
// origin-scoped local storage: one key per document, values are strings.
package store

import (
	"context"
	"errors"
	"fmt"
)

// DefaultMaxValueSize mirrors the usual per-origin local storage quota.
const DefaultMaxValueSize = 5 << 20

var (
	// ErrNotFound is returned by Get when the key holds no value.
	ErrNotFound = errors.New("store: key not found")

	// ErrQuotaExceeded is returned by Set when the value is larger than allowed.
	ErrQuotaExceeded = errors.New("store: quota exceeded")

	// ErrClosed is returned once the store has been closed.
	ErrClosed = errors.New("store: closed")
)

// Store is a durable string key-value store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// checkQuota validates a value against the size limit. A limit <= 0 disables it.
func checkQuota(key, value string, limit int) error {
	if limit > 0 && len(value) > limit {
		return fmt.Errorf("%w: %q holds %d bytes, limit is %d", ErrQuotaExceeded, key, len(value), limit)
	}
	return nil
}
