// Package settings is the narrow local preference store the wallet core
// reads. Only the preferred fiat currency matters to this core; it selects
// which rate to surface from the fetched rate table.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const DefaultFiatCurrency = "USD"

type Store interface {
	FiatCurrency() string
	SetFiatCurrency(code string) error
}

type fileSettings struct {
	FiatCurrency string `json:"fiat_currency"`
}

// FileStore persists settings as a small JSON file in the app data dir.
type FileStore struct {
	mu   sync.Mutex
	path string
	data fileSettings
}

var _ Store = (*FileStore)(nil)

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create settings directory: %w", err)
	}

	s := &FileStore{
		path: filepath.Join(dir, "settings.json"),
		data: fileSettings{FiatCurrency: DefaultFiatCurrency},
	}

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if s.data.FiatCurrency == "" {
		s.data.FiatCurrency = DefaultFiatCurrency
	}
	return s, nil
}

func (s *FileStore) FiatCurrency() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.FiatCurrency
}

func (s *FileStore) SetFiatCurrency(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.FiatCurrency = code
	return s.save()
}

func (s *FileStore) save() error {
	raw, err := json.MarshalIndent(&s.data, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return os.Rename(tmp, s.path)
}
