package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the persisted user state. Only the last folder is remembered.
type Config struct {
	LastFolder string `json:"last_folder,omitempty"`
}

// LastFolderOr returns the remembered folder, or fallback when none is set.
func (c Config) LastFolderOr(fallback string) string {
	if c.LastFolder == "" {
		return fallback
	}
	return c.LastFolder
}

// Store reads and writes Config as a small JSON file.
//
// Persistence is best-effort: callers discard the returned errors on purpose.
type Store struct {
	Path string
}

// NewStore returns a store backed by path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load reads the config file. A missing or corrupt file yields the zero Config
// together with the error.
func (s *Store) Load() (Config, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg, creating the parent directory if needed.
func (s *Store) Save(cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return err
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0644)
}
