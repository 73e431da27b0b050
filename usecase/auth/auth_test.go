package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpletask/backend/domain"
)

var identity = domain.User{ID: "1", Email: "test@example.com"}

func newUseCase(scheme TokenScheme) *UseCase {
	return New(Credentials{Email: "test@example.com", Password: "password"}, identity, scheme, nil)
}

func TestVerifyCredentials(t *testing.T) {
	uc := newUseCase(NewStaticScheme("simple-auth-token", identity))

	user, err := uc.VerifyCredentials("test@example.com", "password")
	require.NoError(t, err)
	assert.Equal(t, "1", user.ID)
	assert.Equal(t, "test@example.com", user.Email)

	for name, pair := range map[string][2]string{
		"wrong password": {"test@example.com", "hunter2"},
		"wrong email":    {"nobody@example.com", "password"},
		"both empty":     {"", ""},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := uc.VerifyCredentials(pair[0], pair[1])
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func TestStaticScheme(t *testing.T) {
	scheme := NewStaticScheme("simple-auth-token", identity)

	token, err := scheme.Issue(identity)
	require.NoError(t, err)
	assert.Equal(t, "simple-auth-token", token)

	user, err := scheme.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, identity, *user)

	_, err = scheme.Verify("other-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = scheme.Verify("")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSignedSchemeRoundTrip(t *testing.T) {
	scheme := NewSignedScheme("test-secret", "task-backend", time.Hour)

	token, err := scheme.Issue(identity)
	require.NoError(t, err)
	assert.NotEqual(t, "simple-auth-token", token)

	user, err := scheme.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, identity.ID, user.ID)
	assert.Equal(t, identity.Email, user.Email)
}

func TestSignedSchemeRejections(t *testing.T) {
	scheme := NewSignedScheme("test-secret", "task-backend", time.Hour)

	_, err := scheme.Verify("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	other := NewSignedScheme("other-secret", "task-backend", time.Hour)
	token, err := other.Issue(identity)
	require.NoError(t, err)

	_, err = scheme.Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSignedSchemeExpiry(t *testing.T) {
	scheme := &SignedScheme{secret: []byte("test-secret"), issuer: "task-backend", ttl: -time.Minute}

	token, err := scheme.Issue(identity)
	require.NoError(t, err)

	_, err = scheme.Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Handlers see the same interface regardless of the configured scheme.
func TestSchemeSubstitution(t *testing.T) {
	for name, scheme := range map[string]TokenScheme{
		"static": NewStaticScheme("simple-auth-token", identity),
		"signed": NewSignedScheme("test-secret", "task-backend", time.Hour),
	} {
		t.Run(name, func(t *testing.T) {
			uc := newUseCase(scheme)

			user, err := uc.VerifyCredentials("test@example.com", "password")
			require.NoError(t, err)

			token, err := uc.IssueToken(*user)
			require.NoError(t, err)

			resolved, err := uc.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, user.ID, resolved.ID)
		})
	}
}
