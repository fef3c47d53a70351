package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/worklane/hrms/internal/apperror"
)

func TestUserServiceCreateHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	u, err := svc.Create(context.Background(), CreateUserInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	stored := repo.users[u.ID]
	assert.NotEqual(t, "correct horse", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("correct horse")))
}

func TestUserServiceCreateValidation(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	t.Run("short password", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateUserInput{Name: "Ada", Email: "ada@example.com", Password: "short"})
		assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
		assert.Contains(t, apperror.FieldErrors(err), "password")
	})

	t.Run("bad email", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateUserInput{Name: "Ada", Email: "nope", Password: "long enough"})
		assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
		assert.Contains(t, apperror.FieldErrors(err), "email")
	})
}

func TestUserServiceDuplicateEmail(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateUserInput{Name: "Ada", Email: "ada@example.com", Password: "long enough"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateUserInput{Name: "Other", Email: "ada@example.com", Password: "long enough"})
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
	assert.Contains(t, apperror.FieldErrors(err), "email")
}

func TestUserServiceUpdateKeepsPasswordUnlessChanged(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateUserInput{Name: "Ada", Email: "ada@example.com", Password: "correct horse"})
	require.NoError(t, err)
	originalHash := repo.users[u.ID].Password

	name := "Ada L."
	_, err = svc.Update(ctx, u.ID, UpdateUserInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, originalHash, repo.users[u.ID].Password)

	newPassword := "battery staple"
	_, err = svc.Update(ctx, u.ID, UpdateUserInput{Password: &newPassword})
	require.NoError(t, err)
	assert.NotEqual(t, originalHash, repo.users[u.ID].Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users[u.ID].Password), []byte(newPassword)))
}

func TestUserServiceUpdateDuplicateEmailOtherUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateUserInput{Name: "Ada", Email: "ada@example.com", Password: "long enough"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateUserInput{Name: "Grace", Email: "grace@example.com", Password: "long enough"})
	require.NoError(t, err)

	taken := "ada@example.com"
	_, err = svc.Update(ctx, second.ID, UpdateUserInput{Email: &taken})
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))

	// Re-submitting one's own email is fine.
	own := "grace@example.com"
	_, err = svc.Update(ctx, second.ID, UpdateUserInput{Email: &own})
	assert.NoError(t, err)
}
