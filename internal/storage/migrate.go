// ABOUTME: Data migration between fitleast storage backends.
// ABOUTME: Copies the store's raw values from source to destination untouched.

package storage

import (
	"errors"
	"fmt"
)

// MigrateSummary holds counts of migrated keys.
type MigrateSummary struct {
	Copied  []string
	Skipped []string
}

// CopyKeys copies each key from src to dst. Keys missing from src are skipped,
// so migrating a fresh install doesn't write empty values over real data.
func CopyKeys(src, dst KV, keys []string) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	for _, key := range keys {
		value, err := src.Get(key)
		if errors.Is(err, ErrNotFound) {
			summary.Skipped = append(summary.Skipped, key)
			continue
		}
		if err != nil {
			return summary, fmt.Errorf("read %s from source: %w", key, err)
		}

		if err := dst.Set(key, value); err != nil {
			return summary, fmt.Errorf("write %s to destination: %w", key, err)
		}
		summary.Copied = append(summary.Copied, key)
	}

	return summary, nil
}

// MigrateData copies all workout store keys from src to dst.
func MigrateData(src, dst KV) (*MigrateSummary, error) {
	return CopyKeys(src, dst, StoreKeys)
}
