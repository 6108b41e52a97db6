package storefront

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	accounthttp "github.com/greenmart/storefront/internal/account/delivery/http"
	accountdomain "github.com/greenmart/storefront/internal/account/domain"
	accountrepo "github.com/greenmart/storefront/internal/account/repository"
	carthttp "github.com/greenmart/storefront/internal/cart/delivery/http"
	cartdomain "github.com/greenmart/storefront/internal/cart/domain"
	cartrepo "github.com/greenmart/storefront/internal/cart/repository"
	cataloghttp "github.com/greenmart/storefront/internal/catalog/delivery/http"
	catalogdomain "github.com/greenmart/storefront/internal/catalog/domain"
	catalogrepo "github.com/greenmart/storefront/internal/catalog/repository"
	checkouthttp "github.com/greenmart/storefront/internal/checkout/delivery/http"
	wishlisthttp "github.com/greenmart/storefront/internal/wishlist/delivery/http"
	wishlistdomain "github.com/greenmart/storefront/internal/wishlist/domain"
	wishlistrepo "github.com/greenmart/storefront/internal/wishlist/repository"
)

// ProvideUserRepository provides the account repository
func ProvideUserRepository(db *gorm.DB) accountdomain.UserRepository {
	return accountrepo.NewGormUserRepository(db)
}

// ProvideCatalogRepository provides the catalog repository with tracing
func ProvideCatalogRepository(db *gorm.DB) catalogdomain.CatalogRepository {
	return catalogrepo.NewTracingCatalogRepository(db)
}

// ProvideCartRepository provides the cart repository
func ProvideCartRepository(db *gorm.DB) cartdomain.CartRepository {
	return cartrepo.NewGormCartRepository(db)
}

// ProvideWishlistRepository provides the wishlist repository
func ProvideWishlistRepository(db *gorm.DB) wishlistdomain.WishlistRepository {
	return wishlistrepo.NewGormWishlistRepository(db)
}

// Handlers holds every HTTP handler of the storefront
type Handlers struct {
	Account  *accounthttp.AccountHandler
	Catalog  *cataloghttp.CatalogHandler
	Cart     *carthttp.CartHandler
	Wishlist *wishlisthttp.WishlistHandler
	Checkout *checkouthttp.CheckoutHandler
}

// ProvideHandlers bundles all HTTP handlers
func ProvideHandlers(
	account *accounthttp.AccountHandler,
	catalog *cataloghttp.CatalogHandler,
	cart *carthttp.CartHandler,
	wishlist *wishlisthttp.WishlistHandler,
	checkout *checkouthttp.CheckoutHandler,
) *Handlers {
	return &Handlers{
		Account:  account,
		Catalog:  catalog,
		Cart:     cart,
		Wishlist: wishlist,
		Checkout: checkout,
	}
}

// RepositorySet provides all repositories
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
	ProvideCatalogRepository,
	ProvideCartRepository,
	ProvideWishlistRepository,
)

// HandlerSet provides all HTTP handlers
var HandlerSet = wire.NewSet(
	accounthttp.NewAccountHandler,
	cataloghttp.NewCatalogHandler,
	carthttp.NewCartHandler,
	wishlisthttp.NewWishlistHandler,
	checkouthttp.NewCheckoutHandler,
	ProvideHandlers,
)
