package auth

import (
	"crypto/subtle"

	"go.uber.org/zap"

	"github.com/simpletask/backend/domain"
)

// TokenScheme issues and validates the opaque value carried by the session
// cookie. The default static scheme reproduces the shared-secret token; a
// signed scheme can be substituted without touching the handlers.
type TokenScheme interface {
	Issue(user domain.User) (string, error)
	Verify(token string) (*domain.User, error)
}

// Credentials is the single accepted account.
type Credentials struct {
	Email    string
	Password string
}

// UseCase verifies credentials and delegates token handling to the configured
// scheme. The fixed identity is the only account the API knows about.
type UseCase struct {
	creds    Credentials
	identity domain.User
	scheme   TokenScheme
	logger   *zap.Logger
}

func New(creds Credentials, identity domain.User, scheme TokenScheme, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		creds:    creds,
		identity: identity,
		scheme:   scheme,
		logger:   logger,
	}
}

// VerifyCredentials checks the supplied pair against the configured account
// and returns the fixed identity on success.
func (uc *UseCase) VerifyCredentials(email, password string) (*domain.User, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(uc.creds.Email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(uc.creds.Password)) == 1
	if !emailOK || !passOK {
		return nil, domain.ErrUnauthorized
	}
	user := uc.identity
	return &user, nil
}

// IssueToken produces the cookie value for an authenticated user.
func (uc *UseCase) IssueToken(user domain.User) (string, error) {
	return uc.scheme.Issue(user)
}

// ValidateToken resolves a cookie value back to the identity it was issued
// for, or domain.ErrUnauthorized.
func (uc *UseCase) ValidateToken(token string) (*domain.User, error) {
	return uc.scheme.Verify(token)
}
