package store

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// LocalStore is the durability backstop: a keyed JSON blob space on disk,
// the server-side analogue of browser localStorage. Writes never fail from
// the caller's perspective; corrupt or missing files read as "no data".
type LocalStore struct {
	dir string
	mu  sync.Mutex
}

var local *LocalStore

// Init sets up the process-wide local store. Called once from main (and from
// tests with a temp dir).
func Init(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	local = &LocalStore{dir: dir}
	return nil
}

// Local returns the process-wide local store.
func Local() *LocalStore {
	return local
}

func (s *LocalStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Read unmarshals the blob stored under key into v. Returns false when the
// key is absent or the stored JSON is corrupt — never an error.
func (s *LocalStore) Read(key string, v any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("local store: corrupt data under %q, treating as empty: %v", key, err)
		return false
	}
	return true
}

// Write stores v under key atomically (tmp file + rename). Errors are logged
// and swallowed: local storage is best-effort durable, never a blocker.
func (s *LocalStore) Write(key string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("local store: marshal %q: %v", key, err)
		return
	}

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		log.Printf("local store: write %q: %v", key, err)
		return
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		log.Printf("local store: rename %q: %v", key, err)
	}
}

// Delete removes the blob stored under key, if any.
func (s *LocalStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	os.Remove(s.path(key))
}

// Storage keys, one blob per user per data type.

func LogsKey(userID string) string   { return "logs_" + userID }
func StreakKey(userID string) string { return "streak_" + userID }
func GoalsKey(userID string) string  { return "goals_" + userID }
