package repository

import (
	"context"

	"tiendaonline/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogoCriteria is the already-sanitized catalog search. The handler layer
// parses the lenient query string; by the time it reaches the repository every
// field is typed.
type CatalogoCriteria struct {
	CategoriaSlug string
	Busqueda      string
	Destacado     *bool
	MinPrecio     *decimal.Decimal
	MaxPrecio     *decimal.Decimal
	Page          int
	Limit         int
}

type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	FindBySlug(ctx context.Context, slug string) (*model.Producto, error)
	ExisteSlug(ctx context.Context, slug string) (bool, error)
	Buscar(ctx context.Context, criteria CatalogoCriteria) ([]model.Producto, int64, error)
	Update(ctx context.Context, p *model.Producto) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).
		Preload("Categoria").
		Preload("Imagenes", func(db *gorm.DB) *gorm.DB { return db.Order("posicion ASC") }).
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productoRepo) FindBySlug(ctx context.Context, slug string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).
		Preload("Categoria").
		Preload("Imagenes", func(db *gorm.DB) *gorm.DB { return db.Order("posicion ASC") }).
		First(&p, "slug = ?", slug).Error
	return &p, err
}

func (r *productoRepo) ExisteSlug(ctx context.Context, slug string) (bool, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("slug = ?", slug).Count(&total).Error
	return total > 0, err
}

func (r *productoRepo) Buscar(ctx context.Context, criteria CatalogoCriteria) ([]model.Producto, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Producto{})

	if criteria.CategoriaSlug != "" {
		q = q.Joins("JOIN categorias ON categorias.id = productos.categoria_id").
			Where("categorias.slug = ?", criteria.CategoriaSlug)
	}
	if criteria.Busqueda != "" {
		patron := "%" + criteria.Busqueda + "%"
		q = q.Where("productos.nombre ILIKE ? OR productos.descripcion ILIKE ?", patron, patron)
	}
	if criteria.Destacado != nil {
		q = q.Where("productos.destacado = ?", *criteria.Destacado)
	}
	if criteria.MinPrecio != nil {
		q = q.Where("productos.precio >= ?", *criteria.MinPrecio)
	}
	if criteria.MaxPrecio != nil {
		q = q.Where("productos.precio <= ?", *criteria.MaxPrecio)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var productos []model.Producto
	offset := (criteria.Page - 1) * criteria.Limit
	err := q.Preload("Categoria").
		Preload("Imagenes", func(db *gorm.DB) *gorm.DB { return db.Order("posicion ASC") }).
		Order("productos.created_at DESC").
		Offset(offset).Limit(criteria.Limit).
		Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.ProductoImagen{}, "producto_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Producto{}, "id = ?", id).Error
	})
}
