//go:build wireinject
// +build wireinject

package storefront

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/greenmart/storefront/pkg/session"
)

// InitializeHandlers initializes every HTTP handler with its dependencies
func InitializeHandlers(db *gorm.DB, sessions *session.Manager) (*Handlers, error) {
	wire.Build(
		RepositorySet,
		HandlerSet,
	)
	return nil, nil
}
