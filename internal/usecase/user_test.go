package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/foodgram/internal/domain"
)

func newUserUsecase(users ...domain.User) (*UserUsecase, *fakeUserRepo, *fakeFollowRepo, *fakeTokens) {
	repo := newFakeUserRepo(users...)
	follows := &fakeFollowRepo{users: repo}
	tokens := &fakeTokens{}
	return NewUserUsecase(repo, follows, fakeHasher{}, tokens), repo, follows, tokens
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Email:     "cook@example.com",
		Username:  "cook",
		FirstName: "Ivan",
		LastName:  "Petrov",
		Password:  "s3cret-pass",
	}
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var v *domain.ValidationError
	require.ErrorAs(t, err, &v)
	return v.Fields
}

func TestRegister(t *testing.T) {
	uc, repo, _, _ := newUserUsecase()

	user, err := uc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "hashed:s3cret-pass", repo.users[user.ID].PasswordHash)
	assert.Equal(t, domain.RoleUser, user.Role)
}

func TestRegisterValidation(t *testing.T) {
	cases := map[string]struct {
		mutate func(*RegisterInput)
		field  string
	}{
		"missing email":     {func(in *RegisterInput) { in.Email = "" }, "email"},
		"bad email":         {func(in *RegisterInput) { in.Email = "not-an-email" }, "email"},
		"long email":        {func(in *RegisterInput) { in.Email = strings.Repeat("a", 250) + "@x.io" }, "email"},
		"bad username":      {func(in *RegisterInput) { in.Username = "bad name!" }, "username"},
		"reserved username": {func(in *RegisterInput) { in.Username = "Me" }, "username"},
		"long first name":   {func(in *RegisterInput) { in.FirstName = strings.Repeat("x", 151) }, "first_name"},
		"missing last name": {func(in *RegisterInput) { in.LastName = " " }, "last_name"},
		"short password":    {func(in *RegisterInput) { in.Password = "abc" }, "password"},
		"numeric password":  {func(in *RegisterInput) { in.Password = "1234567890" }, "password"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			uc, repo, _, _ := newUserUsecase()
			input := validRegistration()
			tc.mutate(&input)

			_, err := uc.Register(context.Background(), input)
			fields := fieldErrors(t, err)
			assert.Contains(t, fields, tc.field)
			assert.Empty(t, repo.users)
		})
	}
}

func TestRegisterRejectsTakenEmailAndUsername(t *testing.T) {
	uc, _, _, _ := newUserUsecase(domain.User{ID: 1, Email: "COOK@example.com", Username: "cook"})

	_, err := uc.Register(context.Background(), validRegistration())
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "username")
}

func TestLogin(t *testing.T) {
	uc, _, _, _ := newUserUsecase(domain.User{ID: 1, Email: "cook@example.com", Username: "cook", PasswordHash: "hashed:s3cret-pass"})
	ctx := context.Background()

	token, err := uc.Login(ctx, "cook@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "token-cook", token)

	_, err = uc.Login(ctx, "cook@example.com", "wrong-pass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, "", "")
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestLogoutRevokesPresentedToken(t *testing.T) {
	uc, _, _, tokens := newUserUsecase()

	assert.ErrorIs(t, uc.Logout(context.Background()), domain.ErrUnauthorized)

	ctx := domain.WithToken(as(1, false), "token-cook")
	require.NoError(t, uc.Logout(ctx))
	assert.Equal(t, []string{"token-cook"}, tokens.revoked)
}

func TestSetPassword(t *testing.T) {
	uc, repo, _, _ := newUserUsecase(domain.User{ID: 1, Username: "cook", PasswordHash: "hashed:old-password"})
	ctx := as(1, false)

	err := uc.SetPassword(ctx, "wrong-password", "new-password")
	assert.Contains(t, fieldErrors(t, err), "current_password")

	err = uc.SetPassword(ctx, "old-password", "old-password")
	assert.Contains(t, fieldErrors(t, err), "new_password")

	err = uc.SetPassword(ctx, "old-password", "12345678")
	assert.Contains(t, fieldErrors(t, err), "new_password")

	require.NoError(t, uc.SetPassword(ctx, "old-password", "new-password"))
	assert.Equal(t, "hashed:new-password", repo.users[1].PasswordHash)

	assert.ErrorIs(t, uc.SetPassword(context.Background(), "a", "b"), domain.ErrUnauthorized)
}

func TestProfilesMarkSubscriptions(t *testing.T) {
	uc, _, follows, _ := newUserUsecase(
		domain.User{ID: 1, Username: "reader"},
		domain.User{ID: 2, Username: "cook"},
		domain.User{ID: 3, Username: "baker"},
	)
	require.NoError(t, follows.Create(context.Background(), 1, 2))

	page, err := uc.List(as(1, false), domain.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Count)
	subscribed := map[string]bool{}
	for _, p := range page.Results {
		subscribed[p.Username] = p.IsSubscribed
	}
	assert.Equal(t, map[string]bool{"baker": false, "cook": true, "reader": false}, subscribed)

	profile, err := uc.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, profile.IsSubscribed)

	profile, err = uc.Get(as(1, false), 2)
	require.NoError(t, err)
	assert.True(t, profile.IsSubscribed)

	_, err = uc.Get(as(1, false), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	me, err := uc.Me(as(1, false))
	require.NoError(t, err)
	assert.Equal(t, "reader", me.Username)

	_, err = uc.Me(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
