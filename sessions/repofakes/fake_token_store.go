package fakesessionrepo

import (
	"context"
	"sync"

	"github.com/jrsteele09/bbdap-client/sessions"
)

var _ sessions.TokenStore = (*FakeTokenStore)(nil)

// FakeTokenStore is an in-memory TokenStore that counts calls and can be primed with errors.
type FakeTokenStore struct {
	token string
	lock  sync.RWMutex

	GetErr   error
	SetErr   error
	ClearErr error

	Gets   int
	Sets   int
	Clears int
}

func NewFakeTokenStore() *FakeTokenStore {
	return &FakeTokenStore{}
}

// NewFakeTokenStoreWithToken returns a store that already holds token
func NewFakeTokenStoreWithToken(token string) *FakeTokenStore {
	return &FakeTokenStore{token: token}
}

func (s *FakeTokenStore) Get(_ context.Context) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.Gets++
	if s.GetErr != nil {
		return "", s.GetErr
	}
	return s.token, nil
}

func (s *FakeTokenStore) Set(_ context.Context, token string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.Sets++
	if s.SetErr != nil {
		return s.SetErr
	}
	s.token = token
	return nil
}

func (s *FakeTokenStore) Clear(_ context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.Clears++
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.token = ""
	return nil
}

// Token returns the stored value without counting as a Get
func (s *FakeTokenStore) Token() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.token
}
