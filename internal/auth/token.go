package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/pet-service/internal/domain"
	apperrors "github.com/spec-kit/pet-service/pkg/util/errorutil"
)

// Validation failures. None of them is retried.
var (
	ErrTokenInvalid    = errors.New("token invalid")
	ErrTokenExpired    = errors.New("token expired")
	ErrUnknownSubject  = errors.New("unknown subject")
	ErrSubjectDisabled = errors.New("subject disabled")
)

const defaultTokenTTL = 24 * time.Hour

// SubjectLookup resolves the current credential of a subject.
type SubjectLookup interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Claims is the JWT payload. Roles are informational; authorization always
// uses the roles read from the store at validation time.
type Claims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 bearer tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	users  SubjectLookup
	now    func() time.Time
}

// TokenOption customises a TokenService.
type TokenOption func(*TokenService)

// WithClock replaces the wall clock used for issue and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(ts *TokenService) {
		if now != nil {
			ts.now = now
		}
	}
}

// NewTokenService builds a service. A non-positive ttl falls back to 24h.
func NewTokenService(secret string, ttl time.Duration, users SubjectLookup, opts ...TokenOption) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	ts := &TokenService{secret: []byte(secret), ttl: ttl, users: users, now: time.Now}
	for _, opt := range opts {
		opt(ts)
	}
	return ts
}

// TTL returns the configured token lifetime.
func (ts *TokenService) TTL() time.Duration {
	return ts.ttl
}

// Issue signs a token for subject. It returns the token and its expiry.
func (ts *TokenService) Issue(subject string, roles []domain.Role) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, errors.New("subject is required")
	}
	now := ts.now()
	claims := &Claims{
		Roles: domain.RoleNames(domain.NormalizeRoles(roles)),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, claims.ExpiresAt.Time, nil
}

// Validate checks signature, then expiry, then the subject's stored state.
func (ts *TokenService) Validate(ctx context.Context, tokenStr string) (*Principal, error) {
	claims, err := ts.parse(tokenStr)
	if err != nil {
		return nil, err
	}

	user, err := ts.users.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrUnknownSubject
		}
		return nil, fmt.Errorf("lookup subject: %w", err)
	}
	if !user.Enabled {
		return nil, ErrSubjectDisabled
	}

	return &Principal{
		Subject: user.Username,
		UserID:  user.ID,
		Roles:   domain.NormalizeRoles(user.Roles),
	}, nil
}

func (ts *TokenService) parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return ts.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ts.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
