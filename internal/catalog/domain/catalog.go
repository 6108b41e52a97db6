package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
)

// Category groups products (e.g. "Vegetables"). Deleting a category
// cascades to its products at the schema level.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Image     string    `json:"image,omitempty"`
	Products  []Product `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Category) TableName() string {
	return "categories"
}

// Product belongs to exactly one category. Price is a fixed-point decimal
// with two places; arithmetic on it must stay exact.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	CategoryID  uint            `json:"category_id" gorm:"not null;index"`
	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(8,2);not null"`
	Stock       int             `json:"stock" gorm:"not null;default:0"`
	Image       string          `json:"image,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// InStock reports whether any stock remains.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// CatalogRepository defines the contract for catalog data access.
// Create and delete operations serve the administrative surface.
type CatalogRepository interface {
	CreateCategory(ctx context.Context, category *Category) error
	FindCategoryByID(ctx context.Context, id uint) (*Category, error)
	FindAllCategories(ctx context.Context) ([]Category, error)
	DeleteCategory(ctx context.Context, id uint) error

	CreateProduct(ctx context.Context, product *Product) error
	FindProductByID(ctx context.Context, id uint) (*Product, error)
	FindAllProducts(ctx context.Context) ([]Product, error)
	FindProductsByCategory(ctx context.Context, categoryID uint) ([]Product, error)
	SearchProductsByName(ctx context.Context, query string) ([]Product, error)
}
