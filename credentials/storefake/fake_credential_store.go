package storefake

import (
	"sync"

	"github.com/gasguard/gasguard-go/credentials"
)

var _ credentials.Store = (*FakeStore)(nil)

// FakeStore is an in-memory credentials.Store for tests.
type FakeStore struct {
	lock  sync.RWMutex
	creds credentials.Credentials
	held  bool

	// Counters for asserting store traffic in tests.
	SetCalls   int
	ClearCalls int
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (fs *FakeStore) Get() (credentials.Credentials, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	if !fs.held {
		return credentials.Credentials{}, credentials.ErrNoCredentials
	}
	return fs.creds, nil
}

func (fs *FakeStore) Set(c credentials.Credentials) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.creds = c
	fs.held = true
	fs.SetCalls++
	return nil
}

func (fs *FakeStore) Clear() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.creds = credentials.Credentials{}
	fs.held = false
	fs.ClearCalls++
	return nil
}
