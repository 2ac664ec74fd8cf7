package services

import (
	"crypto/subtle"
	"errors"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Identity is the single account the journal knows about.
type Identity struct {
	ID       string
	Name     string
	Username string
}

type Authenticator interface {
	Authenticate(username string, password string) (Identity, error)
}

// StaticCredentials checks a login against one configured username and
// password pair. There is no hashing, lockout or rate limiting.
type StaticCredentials struct {
	username string
	password string
}

func NewStaticCredentials(username string, password string) *StaticCredentials {
	return &StaticCredentials{username: username, password: password}
}

func (credentials *StaticCredentials) Authenticate(username string, password string) (Identity, error) {
	if credentials.username == "" || credentials.password == "" {
		return Identity{}, ErrInvalidCredentials
	}

	userMatches := subtle.ConstantTimeCompare([]byte(username), []byte(credentials.username))
	passwordMatches := subtle.ConstantTimeCompare([]byte(password), []byte(credentials.password))
	if userMatches&passwordMatches != 1 {
		return Identity{}, ErrInvalidCredentials
	}

	return Identity{
		ID:       "1",
		Name:     credentials.username,
		Username: credentials.username,
	}, nil
}
