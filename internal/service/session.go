package service

import (
	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	apperrors "github.com/uni-magazine/portal/internal/errors"
)

// bearerToken returns the token for an authenticated session.
func bearerToken(sess domainauth.Session) (string, error) {
	if !sess.IsAuthenticated || sess.BearerToken == "" {
		return "", apperrors.Unauthorized("sign in required")
	}
	return sess.BearerToken, nil
}
