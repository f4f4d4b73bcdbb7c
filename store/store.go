// Package store implements the local-first persistence policy shared by
// session logs, streak data, and goals: the local JSON store is always
// written and always readable, while the remote MongoDB store is an optional
// enhancement that is read preferentially and written best-effort.
package store

import (
	"context"
	"log"
	"time"
)

const remoteTimeout = 10 * time.Second

// ReadThrough prefers the remote copy, mirrors it into local storage on
// success, and falls back to the local copy when the remote is absent,
// errors, or holds nothing. found is false only when neither side has data;
// the caller then uses its zero/default value.
func ReadThrough[T any](key string, remote func(ctx context.Context) (T, bool, error)) (value T, found bool) {
	if RemoteAvailable() {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()
		v, ok, err := remote(ctx)
		if err != nil {
			log.Printf("store: remote read for %q failed, falling back to local: %v", key, err)
		} else if ok {
			Local().Write(key, v)
			return v, true
		}
		// Remote reachable but empty: fall through to local, the remote may
		// simply never have been written.
	}

	if Local().Read(key, &value) {
		return value, true
	}
	var zero T
	return zero, false
}

// WriteThrough writes local storage synchronously — from the caller's
// perspective this never fails — and mirrors to the remote store in the
// background, swallowing and logging any error. The return value reports
// whether a remote sync was attempted, so callers can surface a non-blocking
// "local-only" notice.
func WriteThrough(key string, v any, remote func(ctx context.Context) error) (synced bool) {
	Local().Write(key, v)

	if !RemoteAvailable() {
		return false
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()
		if err := remote(ctx); err != nil {
			log.Printf("store: remote write for %q failed (kept locally): %v", key, err)
		}
	}()
	return true
}
