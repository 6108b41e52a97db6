package command

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/greenmart/storefront/internal/account/domain"
	"github.com/greenmart/storefront/pkg/auth"
)

// RegisterUserCommand represents the command to register a new user.
// The email is the login identifier.
type RegisterUserCommand struct {
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=6"`
	FirstName string
	LastName  string
}

// RegisterUserHandler handles user registration command
type RegisterUserHandler struct {
	repo     domain.UserRepository
	validate *validator.Validate
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo, validate: validator.New()}
}

// Handle executes the register user command. Registration does not log
// the user in; the caller redirects to the login page.
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*domain.User, error) {
	if err := h.validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRegistration, err)
	}

	// Pre-check for a friendlier error; the unique index on email is the
	// authoritative guard under concurrent registrations.
	if existing, _ := h.repo.FindByEmail(ctx, cmd.Email); existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	hashedPassword, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:     cmd.Email,
		Password:  hashedPassword,
		FirstName: cmd.FirstName,
		LastName:  cmd.LastName,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
