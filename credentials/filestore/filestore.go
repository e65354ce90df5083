// Package filestore persists the credential pair in a single encrypted file
// so a login survives process restarts. The file holds a random scrypt salt,
// a secretbox nonce and the sealed JSON payload; the sealing key is derived
// from a caller-supplied passphrase.
package filestore

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"

	"github.com/gasguard/gasguard-go/credentials"
)

const (
	saltLength  = 32
	nonceLength = 24
	keyLength   = 32

	// scrypt parameters (interactive profile).
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1

	fileMode = 0o600
)

var _ credentials.Store = (*Store)(nil)

// Store is a file-backed, passphrase-encrypted credentials.Store.
type Store struct {
	path       string
	passphrase []byte
	lock       sync.Mutex
}

// New creates a Store writing to path. The parent directory must exist.
func New(path, passphrase string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("filestore: path is required")
	}
	if passphrase == "" {
		return nil, fmt.Errorf("filestore: passphrase is required")
	}
	return &Store{path: path, passphrase: []byte(passphrase)}, nil
}

// Get reads and decrypts the stored credential pair.
func (s *Store) Get() (credentials.Credentials, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return credentials.Credentials{}, credentials.ErrNoCredentials
	}
	if err != nil {
		return credentials.Credentials{}, fmt.Errorf("filestore: read %s: %w", s.path, err)
	}

	if len(raw) < saltLength+nonceLength+secretbox.Overhead {
		return credentials.Credentials{}, fmt.Errorf("filestore: %s is truncated", s.path)
	}

	key, err := s.deriveKey(raw[:saltLength])
	if err != nil {
		return credentials.Credentials{}, err
	}

	var nonce [nonceLength]byte
	copy(nonce[:], raw[saltLength:saltLength+nonceLength])

	plaintext, ok := secretbox.Open(nil, raw[saltLength+nonceLength:], &nonce, key)
	if !ok {
		return credentials.Credentials{}, fmt.Errorf("filestore: cannot decrypt %s (wrong passphrase or corrupt file)", s.path)
	}

	var creds credentials.Credentials
	if err := json.Unmarshal(plaintext, &creds); err != nil {
		return credentials.Credentials{}, fmt.Errorf("filestore: decode credentials: %w", err)
	}
	return creds, nil
}

// Set encrypts and atomically replaces the stored credential pair.
func (s *Store) Set(creds credentials.Credentials) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	plaintext, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("filestore: encode credentials: %w", err)
	}

	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("filestore: generate salt: %w", err)
	}

	key, err := s.deriveKey(salt)
	if err != nil {
		return err
	}

	var nonce [nonceLength]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return fmt.Errorf("filestore: generate nonce: %w", err)
	}

	out := make([]byte, 0, saltLength+nonceLength+len(plaintext)+secretbox.Overhead)
	out = append(out, salt...)
	out = append(out, nonce[:]...)
	out = secretbox.Seal(out, plaintext, &nonce, key)

	return s.writeAtomic(out)
}

// Clear removes the stored credential pair. Clearing an empty store is not
// an error.
func (s *Store) Clear() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("filestore: remove %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) deriveKey(salt []byte) (*[keyLength]byte, error) {
	derived, err := scrypt.Key(s.passphrase, salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return nil, fmt.Errorf("filestore: derive key: %w", err)
	}
	var key [keyLength]byte
	copy(key[:], derived)
	return &key, nil
}

// writeAtomic writes via a temp file in the same directory and renames over
// the target so a crash mid-write never leaves a half-written store.
func (s *Store) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".gasguard-creds-*")
	if err != nil {
		return fmt.Errorf("filestore: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("filestore: write temp file: %w", err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("filestore: chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("filestore: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("filestore: rename into place: %w", err)
	}
	return nil
}
