package usecase

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/totegamma/foodgram/internal/domain"
)

var tracer = otel.Tracer("usecase")

type RegisterInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

type UserUsecase struct {
	users   UserRepository
	follows FollowRepository
	hasher  PasswordHasher
	tokens  TokenService
}

func NewUserUsecase(users UserRepository, follows FollowRepository, hasher PasswordHasher, tokens TokenService) *UserUsecase {
	return &UserUsecase{
		users:   users,
		follows: follows,
		hasher:  hasher,
		tokens:  tokens,
	}
}

func (uc *UserUsecase) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	ctx, span := tracer.Start(ctx, "User.Usecase.Register")
	defer span.End()

	var v domain.ValidationError
	if checkEmail(&v, input.Email) {
		exists, err := uc.users.EmailExists(ctx, input.Email)
		if err != nil {
			return domain.User{}, err
		}
		if exists {
			v.Add("email", "A user with that email already exists.")
		}
	}
	if checkUsername(&v, input.Username) {
		exists, err := uc.users.UsernameExists(ctx, input.Username)
		if err != nil {
			return domain.User{}, err
		}
		if exists {
			v.Add("username", "A user with that username already exists.")
		}
	}
	checkRequired(&v, "first_name", input.FirstName, domain.MaxUserFieldLength)
	checkRequired(&v, "last_name", input.LastName, domain.MaxUserFieldLength)
	checkPassword(&v, "password", input.Password)
	if err := v.OrNil(); err != nil {
		return domain.User{}, err
	}

	hash, err := uc.hasher.HashPassword(input.Password)
	if err != nil {
		span.RecordError(err)
		return domain.User{}, err
	}

	return uc.users.Create(ctx, domain.User{
		Email:        input.Email,
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	})
}

// Login exchanges credentials for a token. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (uc *UserUsecase) Login(ctx context.Context, email, password string) (string, error) {
	ctx, span := tracer.Start(ctx, "User.Usecase.Login")
	defer span.End()

	var v domain.ValidationError
	checkRequired(&v, "email", email, 0)
	checkRequired(&v, "password", password, 0)
	if err := v.OrNil(); err != nil {
		return "", err
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := uc.hasher.ComparePassword(user.PasswordHash, password); err != nil {
		return "", err
	}

	return uc.tokens.Issue(ctx, user)
}

func (uc *UserUsecase) Logout(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "User.Usecase.Logout")
	defer span.End()

	token := domain.TokenFromContext(ctx)
	if token == "" {
		return domain.ErrUnauthorized
	}
	return uc.tokens.Revoke(ctx, token)
}

func (uc *UserUsecase) SetPassword(ctx context.Context, currentPassword, newPassword string) error {
	ctx, span := tracer.Start(ctx, "User.Usecase.SetPassword")
	defer span.End()

	requester := domain.RequesterFromContext(ctx)
	if !requester.Authenticated() {
		return domain.ErrUnauthorized
	}

	var v domain.ValidationError
	checkRequired(&v, "current_password", currentPassword, 0)
	if checkPassword(&v, "new_password", newPassword) && newPassword == currentPassword {
		v.Add("new_password", "The new password must differ from the current one.")
	}
	if err := v.OrNil(); err != nil {
		return err
	}

	user, err := uc.users.Get(ctx, requester.UserID)
	if err != nil {
		return err
	}

	err = uc.hasher.ComparePassword(user.PasswordHash, currentPassword)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		v.Add("current_password", "Invalid password.")
		return &v
	}
	if err != nil {
		return err
	}

	hash, err := uc.hasher.HashPassword(newPassword)
	if err != nil {
		span.RecordError(err)
		return err
	}
	return uc.users.UpdatePassword(ctx, user.ID, hash)
}

func (uc *UserUsecase) Me(ctx context.Context) (domain.UserProfile, error) {
	requester := domain.RequesterFromContext(ctx)
	if !requester.Authenticated() {
		return domain.UserProfile{}, domain.ErrUnauthorized
	}

	user, err := uc.users.Get(ctx, requester.UserID)
	if err != nil {
		return domain.UserProfile{}, err
	}
	return domain.UserProfile{User: user}, nil
}

func (uc *UserUsecase) Get(ctx context.Context, id int64) (domain.UserProfile, error) {
	user, err := uc.users.Get(ctx, id)
	if err != nil {
		return domain.UserProfile{}, err
	}

	profiles, err := uc.profiles(ctx, []domain.User{user})
	if err != nil {
		return domain.UserProfile{}, err
	}
	return profiles[0], nil
}

func (uc *UserUsecase) List(ctx context.Context, p domain.Pagination) (domain.Page[domain.UserProfile], error) {
	ctx, span := tracer.Start(ctx, "User.Usecase.List")
	defer span.End()

	page, err := uc.users.List(ctx, p)
	if err != nil {
		return domain.Page[domain.UserProfile]{}, err
	}

	profiles, err := uc.profiles(ctx, page.Results)
	if err != nil {
		return domain.Page[domain.UserProfile]{}, err
	}
	return domain.Page[domain.UserProfile]{Count: page.Count, Results: profiles}, nil
}

// profiles annotates users with whether the requester follows them.
func (uc *UserUsecase) profiles(ctx context.Context, users []domain.User) ([]domain.UserProfile, error) {
	requester := domain.RequesterFromContext(ctx)

	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	following, err := uc.follows.Following(ctx, requester.UserID, ids)
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.UserProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, domain.UserProfile{User: u, IsSubscribed: following[u.ID]})
	}
	return profiles, nil
}
