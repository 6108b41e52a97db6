package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/greenmart/storefront/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

// TracingCatalogRepository wraps GormCatalogRepository with spans around
// every catalog read and write.
type TracingCatalogRepository struct {
	inner *GormCatalogRepository
}

// NewTracingCatalogRepository creates a traced catalog repository.
func NewTracingCatalogRepository(db *gorm.DB) *TracingCatalogRepository {
	return &TracingCatalogRepository{inner: NewGormCatalogRepository(db)}
}

// AutoMigrate runs database migrations for catalog tables
func (r *TracingCatalogRepository) AutoMigrate() error {
	return r.inner.AutoMigrate()
}

func (r *TracingCatalogRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	ctx, span := tracer.Start(ctx, "repository.CreateCategory",
		trace.WithAttributes(attribute.String("category.name", category.Name)))
	defer span.End()

	return record(span, r.inner.CreateCategory(ctx, category))
}

func (r *TracingCatalogRepository) FindCategoryByID(ctx context.Context, id uint) (*domain.Category, error) {
	ctx, span := tracer.Start(ctx, "repository.FindCategoryByID",
		trace.WithAttributes(attribute.Int("category.id", int(id))))
	defer span.End()

	category, err := r.inner.FindCategoryByID(ctx, id)
	return category, record(span, err)
}

func (r *TracingCatalogRepository) FindAllCategories(ctx context.Context) ([]domain.Category, error) {
	ctx, span := tracer.Start(ctx, "repository.FindAllCategories")
	defer span.End()

	categories, err := r.inner.FindAllCategories(ctx)
	if err == nil {
		span.SetAttributes(attribute.Int("category.count", len(categories)))
	}
	return categories, record(span, err)
}

func (r *TracingCatalogRepository) DeleteCategory(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "repository.DeleteCategory",
		trace.WithAttributes(attribute.Int("category.id", int(id))))
	defer span.End()

	return record(span, r.inner.DeleteCategory(ctx, id))
}

func (r *TracingCatalogRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.CreateProduct",
		trace.WithAttributes(attribute.String("product.name", product.Name)))
	defer span.End()

	return record(span, r.inner.CreateProduct(ctx, product))
}

func (r *TracingCatalogRepository) FindProductByID(ctx context.Context, id uint) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindProductByID",
		trace.WithAttributes(attribute.Int("product.id", int(id))))
	defer span.End()

	product, err := r.inner.FindProductByID(ctx, id)
	return product, record(span, err)
}

func (r *TracingCatalogRepository) FindAllProducts(ctx context.Context) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindAllProducts")
	defer span.End()

	products, err := r.inner.FindAllProducts(ctx)
	if err == nil {
		span.SetAttributes(attribute.Int("product.count", len(products)))
	}
	return products, record(span, err)
}

func (r *TracingCatalogRepository) FindProductsByCategory(ctx context.Context, categoryID uint) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindProductsByCategory",
		trace.WithAttributes(attribute.Int("category.id", int(categoryID))))
	defer span.End()

	products, err := r.inner.FindProductsByCategory(ctx, categoryID)
	return products, record(span, err)
}

func (r *TracingCatalogRepository) SearchProductsByName(ctx context.Context, query string) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.SearchProductsByName",
		trace.WithAttributes(attribute.String("search.query", query)))
	defer span.End()

	products, err := r.inner.SearchProductsByName(ctx, query)
	if err == nil {
		span.SetAttributes(attribute.Int("search.results", len(products)))
	}
	return products, record(span, err)
}

func record(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
