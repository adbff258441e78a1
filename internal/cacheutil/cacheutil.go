// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dotctl/dotctl/internal/config"
	"github.com/dotctl/dotctl/internal/log"
)

// Dir resolves the base cache directory.
// Precedence:
//  1. DOTCTL_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/dotctl/cache
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("DOTCTL_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "dotctl", "cache"), true
	}
	return "", false
}

// Enabled returns true unless DOTCTL_CACHE explicitly disables it ("0"/"false").
// When DOTCTL_CACHE is unset the cache.enabled config key decides.
func Enabled() bool {
	enabled, ok := os.LookupEnv("DOTCTL_CACHE")
	if !ok {
		on, err := config.GetBool("cache.enabled", true)
		if err != nil {
			log.Debugf("ignoring cache.enabled: %v", err)
			return true
		}
		return on
	}
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// EnsureBaseDir creates the base cache directory if caching is enabled and
// a base path can be resolved. Returns the path, whether it is usable, and an
// error if creation failed.
func EnsureBaseDir() (string, bool, error) {
	if !Enabled() {
		return "", false, nil
	}

	base, ok := Dir()
	if !ok {
		return "", false, nil
	}

	if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
		return base, false, fmt.Errorf("failed to create cache base directory: %w", err)
	}
	return base, true, nil
}

// Purge removes entries older than the provided number of hours.
// If hours <= 0 or the cache dir cannot be resolved, it is a no-op.
func Purge(hours int) error {
	if hours <= 0 {
		log.Debug("cache purge disabled")
		return nil
	}

	base, ok := Dir()
	if !ok {
		return nil
	}

	maxAge := time.Duration(hours) * time.Hour
	err := filepath.Walk(base, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}
		if info == nil || info.IsDir() || time.Since(info.ModTime()) <= maxAge {
			return nil
		}
		if err := os.Remove(path); err != nil {
			log.WithError(err).Warnf("failed to remove cache file %s", path)
			return nil
		}
		log.Debugf("removed cache file %s", path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

// Read returns the bytes cached under bucket for clearKey.
func Read(bucket string, clearKey string) ([]byte, bool) {
	p, ok := entryPath(bucket, clearKey)
	if !ok {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	log.Debugf("cache hit: bucket=%s key=%s", bucket, clearKey)
	return bytes.TrimSpace(b), true
}

// Write stores data for clearKey beneath bucket. Creates directories as needed.
// A disabled cache silently drops the write.
func Write(bucket string, clearKey string, data []byte) error {
	p, ok := entryPath(bucket, clearKey)
	if !ok {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cache write: bucket=%s key=%s", bucket, clearKey)
	return nil
}

// ReadJSON decodes a cached JSON document into out. A corrupt entry counts as
// a miss.
func ReadJSON(bucket string, clearKey string, out any) bool {
	b, ok := Read(bucket, clearKey)
	if !ok {
		return false
	}
	if err := json.Unmarshal(b, out); err != nil {
		log.Debugf("cache entry unreadable: bucket=%s err=%v", bucket, err)
		return false
	}
	return true
}

// WriteJSON encodes v as JSON and caches it.
func WriteJSON(bucket string, clearKey string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	return Write(bucket, clearKey, b)
}

// entryPath returns where an entry lives, or false when caching is off.
func entryPath(bucket string, clearKey string) (string, bool) {
	if !Enabled() {
		return "", false
	}
	base, ok := Dir()
	if !ok {
		return "", false
	}
	return filepath.Join(base, bucket, encodeKey(clearKey)), true
}

// encodeKey hashes a clear-text key into a filesystem-safe name.
func encodeKey(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}
