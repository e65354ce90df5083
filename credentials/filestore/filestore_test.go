package filestore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gasguard/gasguard-go/credentials"
	"github.com/gasguard/gasguard-go/credentials/filestore"
)

const testPassphrase = "correct horse battery staple"

func testPair() credentials.Credentials {
	return credentials.Credentials{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")

	store, err := filestore.New(path, testPassphrase)
	require.NoError(t, err)
	require.NoError(t, store.Set(testPair()))

	got, err := store.Get()
	require.NoError(t, err)
	require.Equal(t, testPair(), got)
}

func TestSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")

	first, err := filestore.New(path, testPassphrase)
	require.NoError(t, err)
	require.NoError(t, first.Set(testPair()))

	// A fresh instance over the same file sees the same pair.
	second, err := filestore.New(path, testPassphrase)
	require.NoError(t, err)
	got, err := second.Get()
	require.NoError(t, err)
	require.Equal(t, testPair(), got)
}

func TestEmptyStore(t *testing.T) {
	store, err := filestore.New(filepath.Join(t.TempDir(), "credentials"), testPassphrase)
	require.NoError(t, err)

	_, err = store.Get()
	require.ErrorIs(t, err, credentials.ErrNoCredentials)
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")
	store, err := filestore.New(path, testPassphrase)
	require.NoError(t, err)
	require.NoError(t, store.Set(testPair()))

	require.NoError(t, store.Clear())
	_, err = store.Get()
	require.ErrorIs(t, err, credentials.ErrNoCredentials)

	// Clearing twice is not an error.
	require.NoError(t, store.Clear())
}

func TestWrongPassphraseFailsClosed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")
	store, err := filestore.New(path, testPassphrase)
	require.NoError(t, err)
	require.NoError(t, store.Set(testPair()))

	wrong, err := filestore.New(path, "wrong passphrase")
	require.NoError(t, err)
	_, err = wrong.Get()
	require.Error(t, err)
	require.NotErrorIs(t, err, credentials.ErrNoCredentials)
}

func TestCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	store, err := filestore.New(path, testPassphrase)
	require.NoError(t, err)
	_, err = store.Get()
	require.Error(t, err)
}

func TestOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")
	store, err := filestore.New(path, testPassphrase)
	require.NoError(t, err)
	require.NoError(t, store.Set(testPair()))

	// Refresh overwrites only the access token.
	updated := testPair()
	updated.AccessToken = "access-2"
	require.NoError(t, store.Set(updated))

	got, err := store.Get()
	require.NoError(t, err)
	require.Equal(t, updated, got)
}

func TestNewValidation(t *testing.T) {
	_, err := filestore.New("", testPassphrase)
	require.Error(t, err)

	_, err = filestore.New(filepath.Join(t.TempDir(), "credentials"), "")
	require.Error(t, err)
}
