package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/worklane/hrms/internal/apperror"
	"github.com/worklane/hrms/internal/domain"
	"github.com/worklane/hrms/internal/query"
	"github.com/worklane/hrms/internal/validate"
)

// UserService handles business logic for user accounts. Passwords are
// bcrypt-hashed before they reach the repository and never leave it.
type UserService struct {
	repo domain.UserRepository
}

func NewUserService(repo domain.UserRepository) *UserService {
	return &UserService{repo: repo}
}

type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (us *UserService) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.User], error) {
	return us.repo.List(ctx, desc)
}

func (us *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return us.repo.GetByID(ctx, id)
}

func (us *UserService) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	errs := validate.Errors{}
	validate.RequiredString(errs, "name", in.Name)
	validate.MaxLen(errs, "name", in.Name, 150)
	validate.RequiredString(errs, "email", in.Email)
	validate.Email(errs, "email", in.Email)
	validate.RequiredString(errs, "password", in.Password)
	if in.Password != "" && len(in.Password) < 8 {
		errs.Add("password", "the password field must be at least 8 characters")
	}
	if !errs.Empty() {
		return nil, apperror.Validation(errs)
	}

	if existing, err := us.repo.GetByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, apperror.ValidationField("email", "the email has already been taken")
	} else if err != nil && apperror.GetCode(err) != apperror.CodeNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, "failed to hash password", err)
	}

	u := &domain.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hash),
	}
	if err := us.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return us.repo.GetByID(ctx, u.ID)
}

func (us *UserService) Update(ctx context.Context, id int64, in UpdateUserInput) (*domain.User, error) {
	u, err := us.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	errs := validate.Errors{}
	if in.Name != nil {
		u.Name = *in.Name
		validate.RequiredString(errs, "name", u.Name)
		validate.MaxLen(errs, "name", u.Name, 150)
	}
	if in.Email != nil {
		u.Email = *in.Email
		validate.RequiredString(errs, "email", u.Email)
		validate.Email(errs, "email", u.Email)
	}
	if in.Password != nil && len(*in.Password) < 8 {
		errs.Add("password", "the password field must be at least 8 characters")
	}
	if !errs.Empty() {
		return nil, apperror.Validation(errs)
	}

	if in.Email != nil {
		if existing, err := us.repo.GetByEmail(ctx, u.Email); err == nil && existing != nil && existing.ID != id {
			return nil, apperror.ValidationField("email", "the email has already been taken")
		} else if err != nil && apperror.GetCode(err) != apperror.CodeNotFound {
			return nil, err
		}
	}

	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperror.Wrap(apperror.CodeInternal, "failed to hash password", err)
		}
		u.Password = string(hash)
	}

	if err := us.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return us.repo.GetByID(ctx, u.ID)
}

func (us *UserService) Delete(ctx context.Context, id int64) error {
	return us.repo.Delete(ctx, id)
}

func (us *UserService) Options(ctx context.Context) ([]domain.Option, error) {
	return us.repo.Options(ctx)
}
