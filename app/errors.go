package app

import (
	"github.com/pkg/errors"
)

// TokenFailed is reported for errors that do not carry a token of their own.
const TokenFailed = "STRATECH_ERROR_FAILED"

type tokener interface {
	Token() string
}

// Token returns the error class printed when a run fails.
func Token(err error) string {
	var t tokener
	if errors.As(err, &t) {
		return t.Token()
	}
	return TokenFailed
}
