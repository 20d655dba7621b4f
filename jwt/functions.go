package jwt

import (
	"strconv"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const issuer = "foodgram"

// New builds claims for userID valid for ttl from now, with a fresh token id.
func New(userID int64, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// Create signs claims with HS256.
func Create(claims Claims, secret []byte) (string, error) {
	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "sign jwt")
	}
	return signed, nil
}

// Validate checks the signature, algorithm, issuer and expiry of token.
func Validate(token string, secret []byte) (*Claims, error) {
	var claims Claims
	_, err := gojwt.ParseWithClaims(token, &claims, func(t *gojwt.Token) (any, error) {
		return secret, nil
	},
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithIssuer(issuer),
		gojwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "validate jwt")
	}
	if claims.ID == "" {
		return nil, errors.New("jwt has no id")
	}
	return &claims, nil
}

// UserID parses the subject claim.
func (c Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "jwt subject is not a user id")
	}
	return id, nil
}
