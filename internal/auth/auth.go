package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/culprog/backend/internal/models"
)

const SessionCookie = "cul_session"

var ErrInvalidSession = errors.New("invalid session")

type Claims struct {
	Role models.Role `json:"role"`
	Name string      `json:"name"`
	jwt.RegisteredClaims
}

type Sessions struct {
	Secret []byte
	TTL    time.Duration
}

// Issue signs a session token for the user.
func (s Sessions) Issue(u models.User, now time.Time) (string, error) {
	claims := Claims{
		Role: u.Role,
		Name: u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// Parse validates a session token and returns its claims. Expired, malformed
// or wrongly signed tokens all come back as ErrInvalidSession.
func (s Sessions) Parse(raw string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return s.Secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidSession
	}
	return claims, nil
}

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
