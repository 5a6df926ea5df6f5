package session

import "errors"

var (
	ErrNotAuthenticated = errors.New("not logged in")
	ErrEmptyToken       = errors.New("server returned an empty token")
)
