// Package config stores the API key (and optional provider settings) in a
// JSON file in the user's config directory.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/KartikLabhshetwar/briefli/internal/core/validator"
)

const (
	// AppName names the config directory.
	AppName = "briefli"
	// FileName is the config file inside the config directory.
	FileName = "config.json"
	// EnvConfigDir overrides the config directory.
	EnvConfigDir = "BRIEFLI_CONFIG_DIR"
)

// ErrNoKey is returned when no usable API key is stored.
var ErrNoKey = errors.New("no API key found in config")

// File is the on-disk record.
type File struct {
	APIKey      string `json:"apiKey,omitempty"`
	LastUpdated string `json:"lastUpdated,omitempty"`
	Provider    string `json:"provider,omitempty"`
	Model       string `json:"model,omitempty"`
}

// Store reads and writes the config file at Path.
type Store struct {
	Path string
}

// NewStore returns a Store for the default config location.
func NewStore() (*Store, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return &Store{Path: filepath.Join(dir, FileName)}, nil
}

// DefaultDir returns the platform config directory for briefli:
// ~/.config/briefli on POSIX and %APPDATA%\briefli on Windows. EnvConfigDir
// takes precedence over both.
func DefaultDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return dirFor(runtime.GOOS, home, os.Getenv("APPDATA")), nil
}

func dirFor(goos, home, appData string) string {
	if goos == "windows" {
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, AppName)
	}
	return filepath.Join(home, ".config", AppName)
}

// Location returns the config file path.
func (s *Store) Location() string {
	return s.Path
}

// Load reads the config file. A missing file yields an empty record.
func (s *Store) Load() (*File, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return &File{}, nil
	}
	if err != nil {
		return nil, err
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.Path, err)
	}
	return &f, nil
}

// APIKey returns the stored key. A missing or corrupted file, or a stored key
// that fails validation, yields ErrNoKey.
func (s *Store) APIKey() (string, error) {
	f, err := s.Load()
	if err != nil || f.APIKey == "" {
		return "", ErrNoKey
	}
	if err := validator.ValidateAPIKey(f.APIKey); err != nil {
		return "", ErrNoKey
	}
	return f.APIKey, nil
}

// SaveAPIKey validates key and writes it with the current time, keeping every
// other field already in the file. The key is validated before anything
// touches the disk.
func (s *Store) SaveAPIKey(key string) error {
	if err := validator.ValidateAPIKey(key); err != nil {
		return fmt.Errorf("failed to save API key to config file: %w", err)
	}
	if err := s.save(strings.TrimSpace(key), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save API key to config file: %w", err)
	}
	return nil
}

func (s *Store) save(key string, now time.Time) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return err
	}

	// Unknown fields survive the rewrite; a corrupted file starts over.
	record := map[string]any{}
	if data, err := os.ReadFile(s.Path); err == nil {
		if json.Unmarshal(data, &record) != nil || record == nil {
			record = map[string]any{}
		}
	}
	record["apiKey"] = key
	record["lastUpdated"] = now.Format(time.RFC3339)

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}

	// WriteFile only applies the mode on create.
	if err := os.WriteFile(s.Path, data, 0600); err != nil {
		return err
	}
	return os.Chmod(s.Path, 0600)
}
