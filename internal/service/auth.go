package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/crypto/bcrypt"

	"github.com/totegamma/foodgram/internal/config"
	"github.com/totegamma/foodgram/internal/domain"
	"github.com/totegamma/foodgram/jwt"
)

var tracer = otel.Tracer("auth")

var bcryptCost = bcrypt.DefaultCost

type userLookup interface {
	Get(ctx context.Context, id int64) (domain.User, error)
}

type AuthService struct {
	secret      []byte
	ttl         time.Duration
	users       userLookup
	revocations RevocationStore
	now         func() time.Time
}

func NewAuthService(
	conf config.Auth,
	users userLookup,
	revocations RevocationStore,
) *AuthService {
	return &AuthService{
		secret:      []byte(conf.JwtSecret),
		ttl:         conf.TokenTTL(),
		users:       users,
		revocations: revocations,
		now:         time.Now,
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hash), nil
}

// ComparePassword returns ErrInvalidCredentials when password does not match hash.
func (s *AuthService) ComparePassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return domain.ErrInvalidCredentials
	}
	if err != nil {
		return errors.Wrap(err, "compare password")
	}
	return nil
}

// Issue returns a signed token for user.
func (s *AuthService) Issue(ctx context.Context, user domain.User) (string, error) {
	_, span := tracer.Start(ctx, "Auth.Service.Issue")
	defer span.End()

	token, err := jwt.Create(jwt.New(user.ID, s.ttl, s.now()), s.secret)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	return token, nil
}

// Revoke blocks token for the rest of its lifetime.
func (s *AuthService) Revoke(ctx context.Context, token string) error {
	ctx, span := tracer.Start(ctx, "Auth.Service.Revoke")
	defer span.End()

	claims, err := jwt.Validate(token, s.secret)
	if err != nil {
		span.RecordError(err)
		return domain.ErrUnauthorized
	}

	ttl := claims.ExpiresAt.Sub(s.now())
	if err := s.revocations.Revoke(ctx, claims.ID, ttl); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// Authenticate resolves token into a requester. Invalid, revoked or
// orphaned tokens yield ErrUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Requester, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.Authenticate")
	defer span.End()

	claims, err := jwt.Validate(token, s.secret)
	if err != nil {
		span.RecordError(err)
		return domain.Requester{}, domain.ErrUnauthorized
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		span.RecordError(err)
		return domain.Requester{}, err
	}
	if revoked {
		return domain.Requester{}, domain.ErrUnauthorized
	}

	userID, err := claims.UserID()
	if err != nil {
		span.RecordError(err)
		return domain.Requester{}, domain.ErrUnauthorized
	}
	span.SetAttributes(attribute.Int64("user.id", userID))

	user, err := s.users.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Requester{}, domain.ErrUnauthorized
	}
	if err != nil {
		span.RecordError(err)
		return domain.Requester{}, err
	}

	return domain.Requester{UserID: user.ID, IsAdmin: user.IsAdmin()}, nil
}
