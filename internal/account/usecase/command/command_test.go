package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/greenmart/storefront/internal/account/domain"
	"github.com/greenmart/storefront/internal/account/repository"
)

func setupTestRepo(t *testing.T) *repository.GormUserRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_fk=1"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo := repository.NewGormUserRepository(db)
	require.NoError(t, repo.AutoMigrate())
	return repo
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)
	handler := NewRegisterUserHandler(repo)

	user, err := handler.Handle(ctx, RegisterUserCommand{
		Email:     "alice@example.com",
		Password:  "secret123",
		FirstName: "Alice",
		LastName:  "Smith",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "secret123", user.Password, "password must be stored hashed")
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)
	handler := NewRegisterUserHandler(repo)

	cmd := RegisterUserCommand{Email: "bob@example.com", Password: "secret123"}
	_, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateEmail))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "exactly one user row must exist after a duplicate registration")
}

func TestRegisterUser_Validation(t *testing.T) {
	ctx := context.Background()
	handler := NewRegisterUserHandler(setupTestRepo(t))

	tests := []struct {
		name string
		cmd  RegisterUserCommand
	}{
		{"missing email", RegisterUserCommand{Password: "secret123"}},
		{"malformed email", RegisterUserCommand{Email: "not-an-email", Password: "secret123"}},
		{"missing password", RegisterUserCommand{Email: "carol@example.com"}},
		{"short password", RegisterUserCommand{Email: "carol@example.com", Password: "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Handle(ctx, tt.cmd)
			assert.True(t, errors.Is(err, domain.ErrInvalidRegistration))
		})
	}
}

func TestLoginUser(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepo(t)
	register := NewRegisterUserHandler(repo)
	login := NewLoginUserHandler(repo)

	_, err := register.Handle(ctx, RegisterUserCommand{Email: "dave@example.com", Password: "secret123"})
	require.NoError(t, err)

	user, err := login.Handle(ctx, LoginUserCommand{Email: "dave@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "dave@example.com", user.Email)

	// A wrong password right after a successful login still fails with the
	// generic credential error.
	_, err = login.Handle(ctx, LoginUserCommand{Email: "dave@example.com", Password: "wrong"})
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
}

func TestLoginUser_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	login := NewLoginUserHandler(setupTestRepo(t))

	// Unknown email and wrong password are indistinguishable to the caller.
	_, err := login.Handle(ctx, LoginUserCommand{Email: "nobody@example.com", Password: "secret123"})
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
}
