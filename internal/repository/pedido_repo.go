package repository

import (
	"context"

	"tiendaonline/internal/filtro"
	"tiendaonline/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Aggregate rows ────────────────────────────────────────────────────────────
// Raw GROUP BY results. The statistics service owns sorting, zero-filling and
// truncation; the repository only runs the grouped queries.

type FilaBucket struct {
	Clave    string
	Cantidad int64
}

type FilaDia struct {
	Fecha    string // YYYY-MM-DD in the reference timezone
	Cantidad int64
}

type FilaProducto struct {
	ProductoID string
	Nombre     string
	Precio     decimal.Decimal
	Cantidad   int64
	Ingresos   decimal.Decimal
}

type FilaCategoria struct {
	Categoria string
	Cantidad  int64
	Ingresos  decimal.Decimal
}

// PedidoRepository defines the data access contract for orders, including the
// grouped-count and grouped-sum queries behind the statistics endpoints.
// Services depend on this interface, not on the concrete GORM implementation.
type PedidoRepository interface {
	Create(ctx context.Context, p *model.Pedido) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	FindByToken(ctx context.Context, token uuid.UUID) (*model.Pedido, error)
	Update(ctx context.Context, p *model.Pedido) error
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error
	UpdateEstadoPago(ctx context.Context, id uuid.UUID, estadoPago string) error
	AgregarImagen(ctx context.Context, img *model.PedidoImagen) error

	List(ctx context.Context, clausulas []filtro.Clausula, page, limit int) ([]model.Pedido, int64, error)

	Contar(ctx context.Context, clausulas []filtro.Clausula) (int64, error)
	SumarIngresos(ctx context.Context, clausulas []filtro.Clausula) (decimal.Decimal, error)
	ContarPorCampo(ctx context.Context, campo string, clausulas []filtro.Clausula) ([]FilaBucket, error)
	ContarPorDia(ctx context.Context, clausulas []filtro.Clausula, timezone string) ([]FilaDia, error)
	// AgruparPorProducto excludes NULL product references; cancelled orders
	// are excluded only when excluirCancelados is set.
	AgruparPorProducto(ctx context.Context, clausulas []filtro.Clausula, excluirCancelados bool) ([]FilaProducto, error)
	AgruparPorCategoria(ctx context.Context) ([]FilaCategoria, error)
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

// aplicarClausulas maps the resolver's typed predicates onto the query.
// Clauses are ANDed in the order given.
func aplicarClausulas(q *gorm.DB, clausulas []filtro.Clausula) *gorm.DB {
	for _, c := range clausulas {
		switch c.Op {
		case filtro.OpEn:
			q = q.Where(c.Campo+" IN ?", c.Valor)
		case filtro.OpIgual:
			q = q.Where(c.Campo+" = ?", c.Valor)
		case filtro.OpContiene:
			q = q.Where(c.Campo+" ILIKE ?", "%"+c.Valor.(string)+"%")
		case filtro.OpDesde:
			q = q.Where(c.Campo+" >= ?", c.Valor)
		case filtro.OpHasta:
			q = q.Where(c.Campo+" <= ?", c.Valor)
		}
	}
	return q
}

func (r *pedidoRepo) Create(ctx context.Context, p *model.Pedido) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Producto.Categoria").
		Preload("Imagenes", func(db *gorm.DB) *gorm.DB { return db.Order("posicion ASC") }).
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *pedidoRepo) FindByToken(ctx context.Context, token uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Producto.Categoria").
		Preload("Imagenes", func(db *gorm.DB) *gorm.DB { return db.Order("posicion ASC") }).
		First(&p, "token = ?", token).Error
	return &p, err
}

func (r *pedidoRepo) Update(ctx context.Context, p *model.Pedido) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *pedidoRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.Pedido{}).Where("id = ?", id).
		Update("estado", estado).Error
}

func (r *pedidoRepo) UpdateEstadoPago(ctx context.Context, id uuid.UUID, estadoPago string) error {
	return r.db.WithContext(ctx).Model(&model.Pedido{}).Where("id = ?", id).
		Update("estado_pago", estadoPago).Error
}

func (r *pedidoRepo) AgregarImagen(ctx context.Context, img *model.PedidoImagen) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *pedidoRepo) List(ctx context.Context, clausulas []filtro.Clausula, page, limit int) ([]model.Pedido, int64, error) {
	var pedidos []model.Pedido
	var total int64

	q := aplicarClausulas(r.db.WithContext(ctx).Model(&model.Pedido{}), clausulas)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Preload("Producto.Categoria").
		Preload("Imagenes", func(db *gorm.DB) *gorm.DB { return db.Order("posicion ASC") }).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&pedidos).Error
	return pedidos, total, err
}

func (r *pedidoRepo) Contar(ctx context.Context, clausulas []filtro.Clausula) (int64, error) {
	var total int64
	err := aplicarClausulas(r.db.WithContext(ctx).Model(&model.Pedido{}), clausulas).
		Count(&total).Error
	return total, err
}

func (r *pedidoRepo) SumarIngresos(ctx context.Context, clausulas []filtro.Clausula) (decimal.Decimal, error) {
	// Unset prices sum as zero — the aggregate must never become NULL.
	var fila struct{ Total decimal.Decimal }
	err := aplicarClausulas(r.db.WithContext(ctx).Model(&model.Pedido{}), clausulas).
		Select("COALESCE(SUM(precio_total), 0) AS total").
		Scan(&fila).Error
	return fila.Total, err
}

func (r *pedidoRepo) ContarPorCampo(ctx context.Context, campo string, clausulas []filtro.Clausula) ([]FilaBucket, error) {
	var filas []FilaBucket
	err := aplicarClausulas(r.db.WithContext(ctx).Model(&model.Pedido{}), clausulas).
		Select(campo + " AS clave, COUNT(*) AS cantidad").
		Group(campo).
		Scan(&filas).Error
	return filas, err
}

func (r *pedidoRepo) ContarPorDia(ctx context.Context, clausulas []filtro.Clausula, timezone string) ([]FilaDia, error) {
	// Day boundaries are computed in the reference timezone, not UTC-naively.
	var filas []FilaDia
	err := aplicarClausulas(r.db.WithContext(ctx).Model(&model.Pedido{}), clausulas).
		Select("to_char(created_at AT TIME ZONE ?, 'YYYY-MM-DD') AS fecha, COUNT(*) AS cantidad", timezone).
		Group("fecha").
		Scan(&filas).Error
	return filas, err
}

func (r *pedidoRepo) AgruparPorProducto(ctx context.Context, clausulas []filtro.Clausula, excluirCancelados bool) ([]FilaProducto, error) {
	q := aplicarClausulas(r.db.WithContext(ctx).Model(&model.Pedido{}), clausulas).
		Joins("JOIN productos ON productos.id = pedidos.producto_id").
		Where("pedidos.producto_id IS NOT NULL")
	if excluirCancelados {
		q = q.Where("pedidos.estado <> ?", model.EstadoCancelada)
	}

	var filas []FilaProducto
	err := q.Select(
		"productos.id AS producto_id, " +
			"productos.nombre AS nombre, " +
			"productos.precio AS precio, " +
			"COUNT(pedidos.id) AS cantidad, " +
			"COALESCE(SUM(pedidos.precio_total), 0) AS ingresos").
		Group("productos.id, productos.nombre, productos.precio").
		Scan(&filas).Error
	return filas, err
}

func (r *pedidoRepo) AgruparPorCategoria(ctx context.Context) ([]FilaCategoria, error) {
	var filas []FilaCategoria
	err := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Joins("JOIN productos ON productos.id = pedidos.producto_id").
		Joins("JOIN categorias ON categorias.id = productos.categoria_id").
		Where("pedidos.producto_id IS NOT NULL").
		Select("categorias.nombre AS categoria, COUNT(pedidos.id) AS cantidad, COALESCE(SUM(pedidos.precio_total), 0) AS ingresos").
		Group("categorias.nombre").
		Scan(&filas).Error
	return filas, err
}
