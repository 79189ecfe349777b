// Package keyring stores the session token in the operating system keyring.
package keyring

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrsteele09/bbdap-client/sessions"
	gokeyring "github.com/zalando/go-keyring"
)

const (
	DefaultService = "bbdap"
	DefaultUser    = "session-token"
)

var _ sessions.TokenStore = (*TokenStore)(nil)

// TokenStore persists the bearer token under a single keyring entry.
type TokenStore struct {
	service string
	user    string
}

func New() *TokenStore {
	return &TokenStore{service: DefaultService, user: DefaultUser}
}

// NewWithEntry uses a custom service/user pair, mainly so tests do not touch the real entry
func NewWithEntry(service, user string) *TokenStore {
	return &TokenStore{service: service, user: user}
}

func (s *TokenStore) Get(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	token, err := gokeyring.Get(s.service, s.user)
	if errors.Is(err, gokeyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("[keyring Get] %w", err)
	}
	return token, nil
}

func (s *TokenStore) Set(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := gokeyring.Set(s.service, s.user, token); err != nil {
		return fmt.Errorf("[keyring Set] %w", err)
	}
	return nil
}

func (s *TokenStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := gokeyring.Delete(s.service, s.user)
	if err != nil && !errors.Is(err, gokeyring.ErrNotFound) {
		return fmt.Errorf("[keyring Clear] %w", err)
	}
	return nil
}
