package domain

import (
	"strings"
	"time"
)

// User is a registered account.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsSuperuser  bool      `json:"is_superuser"`
	CDate        time.Time `json:"cdate"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsSuperuser
}

// FullName returns "First Last", or the username when both are blank.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// UserProfile is a user as seen by a particular requester.
type UserProfile struct {
	User
	IsSubscribed bool
}

// Subscription is a followed author together with a preview of their recipes.
type Subscription struct {
	Author       User
	Recipes      []Recipe
	RecipesCount int64
}

// Requester identifies the caller of a request. The zero value is anonymous.
type Requester struct {
	UserID  int64
	IsAdmin bool
}

func (r Requester) Authenticated() bool {
	return r.UserID != 0
}
