package invite

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid invitation token")

// Claims identify one invitation instance.
type Claims struct {
	ID    string
	Guest string
}

// Signer mints and checks invitation identifiers (HS256 JWTs).
type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Issue returns a fresh invitation identifier for guest.
func (s *Signer) Issue(guest string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:       uuid.NewString(),
		Subject:  strings.TrimSpace(guest),
		IssuedAt: jwt.NewNumericDate(now),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

func (s *Signer) Verify(token string) (Claims, error) {
	var rc jwt.RegisteredClaims
	t, err := jwt.ParseWithClaims(token, &rc, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return Claims{}, ErrInvalidToken
	}
	if rc.ID == "" {
		return Claims{}, ErrInvalidToken
	}
	return Claims{ID: rc.ID, Guest: rc.Subject}, nil
}
