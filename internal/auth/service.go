package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prtracker/prtracker/internal/users"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of issued bearer tokens.
const TokenTTL = time.Hour

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid bearer token")
)

type userGetter interface {
	GetByID(ctx context.Context, id int) (*users.User, error)
}

// Service issues and verifies HMAC-signed bearer tokens.
type Service struct {
	secret []byte
	ttl    time.Duration
	users  userGetter
	// ability to inject time for unit testing token expiry
	NowFunc func() time.Time
}

func NewService(secret string, ttl time.Duration, users userGetter) *Service {
	return &Service{
		secret:  []byte(secret),
		ttl:     ttl,
		users:   users,
		NowFunc: time.Now,
	}
}

// Issue creates a signed token for the given user id, valid for the
// service TTL.
func (s *Service) Issue(userID int) (string, error) {
	now := s.NowFunc()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(s.ttl).Unix(),
	})
	return token.SignedString(s.secret)
}

// Authenticate validates the Authorization header value and resolves the
// referenced user. All failure modes (missing header, non-bearer header,
// bad signature, expired token, vanished user) surface as an auth error
// with a message only.
func (s *Service) Authenticate(ctx context.Context, authorizationHeader string) (*users.User, error) {
	if authorizationHeader == "" {
		return nil, ErrMissingToken
	}
	if !strings.HasPrefix(authorizationHeader, "Bearer ") {
		return nil, fmt.Errorf("%w: not a bearer header", ErrInvalidToken)
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(authorizationHeader, "Bearer "))
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	parsed, err := jwt.Parse(
		tokenString,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(s.NowFunc),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	userIDClaim, ok := claims["user_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: user id claim missing", ErrInvalidToken)
	}

	user, err := s.users.GetByID(ctx, int(userIDClaim))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return user, nil
}
