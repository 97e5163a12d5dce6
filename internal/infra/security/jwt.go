package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domuser "example.com/storefront/internal/domain/user"
)

var ErrInvalidToken = errors.New("invalid token")

// JWTService verifies the bearer tokens issued by the shop backend. The
// backend and this service share the HMAC secret.
type JWTService struct {
	secret     []byte
	expiration time.Duration
}

func NewJWTService(secret string, expiration time.Duration) *JWTService {
	return &JWTService{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

type jwtClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token in the backend's claim layout. Logins are
// served by the backend; this only issues local tokens (main's -dev-token
// flag and test fixtures).
func (s *JWTService) GenerateToken(sess domuser.Session) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		UserID: sess.UserID,
		Email:  sess.Email,
		Name:   sess.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseSession validates token and returns the session it identifies, with
// the raw token kept for forwarding to the backend.
func (s *JWTService) ParseSession(token string) (domuser.Session, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domuser.Session{}, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid {
		return domuser.Session{}, ErrInvalidToken
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	sess := domuser.Session{
		UserID: userID,
		Email:  claims.Email,
		Name:   claims.Name,
		Token:  token,
	}
	if !sess.Authenticated() {
		return domuser.Session{}, ErrInvalidToken
	}
	return sess, nil
}
