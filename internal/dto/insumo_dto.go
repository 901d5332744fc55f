package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearInsumoRequest struct {
	Nombre   string          `json:"name"     validate:"required,min=2,max=150"`
	Tipo     string          `json:"type"     validate:"max=100"`
	Cantidad decimal.Decimal `json:"quantity" validate:"min=0"`
	Unidad   *string         `json:"unit"     validate:"omitempty,max=50"`
	Marca    string          `json:"brand"    validate:"max=100"`
	Color    string          `json:"color"    validate:"max=50"`
}

type ActualizarInsumoRequest struct {
	Nombre *string `json:"name"  validate:"omitempty,min=2,max=150"`
	Tipo   *string `json:"type"  validate:"omitempty,max=100"`
	Unidad *string `json:"unit"  validate:"omitempty,max=50"`
	Marca  *string `json:"brand" validate:"omitempty,max=100"`
	Color  *string `json:"color" validate:"omitempty,max=50"`
}

// AjustarStockInsumoRequest carries a signed integer delta. JSON binding
// rejects non-integer values before the service sees them; zero is a valid
// no-op.
type AjustarStockInsumoRequest struct {
	Cantidad int `json:"quantity"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type InsumoFilter struct {
	Tipo     string `form:"type"`
	Marca    string `form:"brand"`
	Color    string `form:"color"`
	Busqueda string `form:"q"` // matches name, type, or brand
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type InsumoResponse struct {
	ID       string          `json:"id"`
	Nombre   string          `json:"name"`
	Tipo     string          `json:"type"`
	Cantidad decimal.Decimal `json:"quantity"`
	Unidad   *string         `json:"unit"`
	Marca    string          `json:"brand"`
	Color    string          `json:"color"`
	// UrgenciaReposicion is derived from the current quantity — display only.
	UrgenciaReposicion string `json:"restock_urgency"`
}

type StockInsumoResponse struct {
	NuevaCantidad decimal.Decimal `json:"new_quantity"`
}
