package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fitzer-app/fitzer/backend/internal/models"
)

// Store keys. The fitzer. prefix keeps them out of the way of anything
// else sharing the file.
const (
	keySnapshot = "fitzer.bmi"
	keyDietPlan = "fitzer.dietPlan"
	keyHistory  = "fitzer.history"
	keyToken    = "fitzer.token"
	keyUser     = "fitzer.user"
	keyPoints   = "fitzer.points"
	keyTheme    = "fitzer.theme"
)

// HistoryLimit caps the locally retained weight history, matching the
// server-side read limit.
const HistoryLimit = 24

// Store is a JSON file-backed key-value snapshot store. Writes are
// last-write-wins; a malformed file or value reads as absent rather than
// erroring.
type Store struct {
	mu   sync.Mutex
	path string
	data map[string]json.RawMessage
}

// NewStore loads the store at path, creating parent directories on the
// first write. Unreadable or corrupt content starts the store empty.
func NewStore(path string) *Store {
	s := &Store{path: path, data: make(map[string]json.RawMessage)}

	raw, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var data map[string]json.RawMessage
	if err := json.Unmarshal(raw, &data); err != nil {
		return s
	}
	s.data = data
	return s
}

// Get decodes the value at key into out. A missing or malformed value
// reports false.
func (s *Store) Get(key string, out interface{}) bool {
	s.mu.Lock()
	raw, ok := s.data[key]
	s.mu.Unlock()
	if !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

// Set writes the value at key and flushes the whole store to disk.
func (s *Store) Set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return s.flush()
}

// Delete removes the value at key.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.flush()
}

func (s *Store) flush() error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store directory: %w", err)
		}
	}
	return os.WriteFile(s.path, raw, 0o600)
}

// Snapshot returns the locally cached calculator result, if any.
func (s *Store) Snapshot() (*models.BMIRecord, bool) {
	var record models.BMIRecord
	if !s.Get(keySnapshot, &record) {
		return nil, false
	}
	return &record, true
}

func (s *Store) SetSnapshot(record *models.BMIRecord) error {
	return s.Set(keySnapshot, record)
}

// PlanRecord is the locally retained diet plan: the chosen diet type and
// the BMI category it was generated against, alongside the items.
type PlanRecord struct {
	DietType string   `json:"dietType"`
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

func (s *Store) DietPlan() (*PlanRecord, bool) {
	var plan PlanRecord
	if !s.Get(keyDietPlan, &plan) {
		return nil, false
	}
	return &plan, true
}

func (s *Store) SetDietPlan(plan *PlanRecord) error {
	return s.Set(keyDietPlan, plan)
}

// History returns the locally retained weight points, newest first.
func (s *Store) History() []models.WeightEntry {
	var entries []models.WeightEntry
	s.Get(keyHistory, &entries)
	return entries
}

// AppendWeight prepends a point and trims the history to HistoryLimit.
func (s *Store) AppendWeight(entry models.WeightEntry) error {
	entries := append([]models.WeightEntry{entry}, s.History()...)
	if len(entries) > HistoryLimit {
		entries = entries[:HistoryLimit]
	}
	return s.Set(keyHistory, entries)
}

func (s *Store) SetHistory(entries []models.WeightEntry) error {
	if len(entries) > HistoryLimit {
		entries = entries[:HistoryLimit]
	}
	return s.Set(keyHistory, entries)
}

func (s *Store) Token() string {
	var token string
	s.Get(keyToken, &token)
	return token
}

func (s *Store) SetToken(token string) error {
	if token == "" {
		return s.Delete(keyToken)
	}
	return s.Set(keyToken, token)
}

func (s *Store) User() (*models.User, bool) {
	var user models.User
	if !s.Get(keyUser, &user) {
		return nil, false
	}
	return &user, true
}

func (s *Store) SetUser(user *models.User) error {
	if user == nil {
		return s.Delete(keyUser)
	}
	return s.Set(keyUser, user)
}

func (s *Store) Points() int {
	var points int
	s.Get(keyPoints, &points)
	return points
}

func (s *Store) SetPoints(points int) error {
	return s.Set(keyPoints, points)
}

// Theme defaults to light, mirroring the server-side preference default.
func (s *Store) Theme() string {
	var theme string
	if !s.Get(keyTheme, &theme) || theme == "" {
		return "light"
	}
	return theme
}

func (s *Store) SetTheme(theme string) error {
	return s.Set(keyTheme, theme)
}
