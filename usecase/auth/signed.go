package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/simpletask/backend/domain"
)

// SignedScheme is an HMAC-signed alternative to the static token, selectable
// by configuration. Cookie handling and handler behavior are unchanged; only
// the cookie value differs.
type SignedScheme struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewSignedScheme(secret, issuer string, ttl time.Duration) *SignedScheme {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SignedScheme{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

func (s *SignedScheme) Issue(user domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iss":   s.issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *SignedScheme) Verify(token string) (*domain.User, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrUnauthorized
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	user := domain.User{}
	if sub, ok := claims["sub"].(string); ok {
		user.ID = sub
	}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	if user.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	return &user, nil
}
