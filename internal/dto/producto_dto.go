package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre      string          `json:"name"        validate:"required,min=2,max=200"`
	Slug        string          `json:"slug"        validate:"omitempty,max=220"`
	Descripcion string          `json:"description"`
	CategoriaID string          `json:"category_id" validate:"required,uuid"`
	Precio      decimal.Decimal `json:"price"       validate:"required"`
	Destacado   bool            `json:"featured"`
	Imagenes    []string        `json:"images"      validate:"omitempty,max=10,dive,url"`
}

type ActualizarProductoRequest struct {
	Nombre      *string          `json:"name"        validate:"omitempty,min=2,max=200"`
	Descripcion *string          `json:"description"`
	CategoriaID *string          `json:"category_id" validate:"omitempty,uuid"`
	Precio      *decimal.Decimal `json:"price"`
	Destacado   *bool            `json:"featured"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// CatalogoFilter is bound from the query string of GET /v1/catalogo.
// min_price / max_price accept decimal strings; unparseable values are
// silently ignored, matching the storefront's lenient search behavior.
type CatalogoFilter struct {
	Categoria string `form:"category"`
	Busqueda  string `form:"q"`
	Destacado string `form:"featured"`
	MinPrecio string `form:"min_price"`
	MaxPrecio string `form:"max_price"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ImagenResponse struct {
	URL      string `json:"url"`
	Posicion int    `json:"position"`
}

type ProductoResponse struct {
	ID          string             `json:"id"`
	Nombre      string             `json:"name"`
	Slug        string             `json:"slug"`
	Descripcion string             `json:"description"`
	Categoria   *CategoriaResponse `json:"category,omitempty"`
	Precio      decimal.Decimal    `json:"price"`
	Destacado   bool               `json:"featured"`
	CreatedAt   string             `json:"created"`
	// DiasDesdeCreacion is display metadata derived from the reference clock.
	DiasDesdeCreacion int              `json:"days_since_creation"`
	Imagenes          []ImagenResponse `json:"images"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
