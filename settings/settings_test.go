package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreDefaults(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, DefaultFiatCurrency, s.FiatCurrency())
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.SetFiatCurrency("CHF"))
	require.Equal(t, "CHF", s.FiatCurrency())

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	require.Equal(t, "CHF", reopened.FiatCurrency())
}

func TestFileStoreEmptyCurrencyFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"fiat_currency": ""}`), 0o600))

	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.Equal(t, DefaultFiatCurrency, s.FiatCurrency())
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(dir)
	require.Error(t, err)
}
