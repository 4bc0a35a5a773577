// Package session persists the auth token returned by login and signup.
package session

import (
	"errors"
	"fmt"

	"github.com/tgienger/kinfolk/internal/db"
	"github.com/zalando/go-keyring"
)

// KeyToken is the storage key holding the session token
const KeyToken = "authToken"

const (
	keyringService = "kinfolk"
	keyringUser    = "session-token"
)

// TokenStore keeps the session token between runs. An absent token is "".
type TokenStore interface {
	Token() (string, error)
	SetToken(token string) error
	Clear() error
}

// StorageTokenStore keeps the token in the same substrate as the collections
type StorageTokenStore struct {
	kv db.KV
}

func NewStorageTokenStore(kv db.KV) *StorageTokenStore {
	return &StorageTokenStore{kv: kv}
}

func (s *StorageTokenStore) Token() (string, error) {
	v, _, err := s.kv.Get(KeyToken)
	return v, err
}

func (s *StorageTokenStore) SetToken(token string) error {
	return s.kv.Set(KeyToken, token)
}

func (s *StorageTokenStore) Clear() error {
	return s.kv.Delete(KeyToken)
}

// KeyringTokenStore keeps the token in the OS keyring
type KeyringTokenStore struct {
	service string
	user    string
}

func NewKeyringTokenStore() *KeyringTokenStore {
	return &KeyringTokenStore{service: keyringService, user: keyringUser}
}

func (k *KeyringTokenStore) Token() (string, error) {
	v, err := keyring.Get(k.service, k.user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token from keyring: %w", err)
	}
	return v, nil
}

func (k *KeyringTokenStore) SetToken(token string) error {
	if err := keyring.Set(k.service, k.user, token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}

func (k *KeyringTokenStore) Clear() error {
	err := keyring.Delete(k.service, k.user)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}
