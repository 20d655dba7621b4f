package jwt

import (
	gojwt "github.com/golang-jwt/jwt/v5"
)

// Claims are the registered claims of an auth token. Subject carries the
// user id and ID the revocable token id.
type Claims struct {
	gojwt.RegisteredClaims
}
