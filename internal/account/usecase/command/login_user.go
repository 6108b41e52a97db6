package command

import (
	"context"

	"github.com/greenmart/storefront/internal/account/domain"
	"github.com/greenmart/storefront/pkg/auth"
)

// LoginUserCommand represents the command to authenticate a user
type LoginUserCommand struct {
	Email    string
	Password string
}

// LoginUserHandler handles user authentication
type LoginUserHandler struct {
	repo domain.UserRepository
}

// NewLoginUserHandler creates a new login user handler
func NewLoginUserHandler(repo domain.UserRepository) *LoginUserHandler {
	return &LoginUserHandler{repo: repo}
}

// Handle verifies the credential pair. Unknown email and wrong password
// both fail with ErrInvalidCredentials. The caller establishes the
// session; a failed attempt changes nothing.
func (h *LoginUserHandler) Handle(ctx context.Context, cmd LoginUserCommand) (*domain.User, error) {
	if cmd.Email == "" || cmd.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := h.repo.FindByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, cmd.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
