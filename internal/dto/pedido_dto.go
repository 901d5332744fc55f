package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// SolicitudPedidoRequest is the public order-request form. Platform, status
// and payment status are forced server-side (web / solicitado / pendiente).
type SolicitudPedidoRequest struct {
	NombreCliente string   `json:"customer_name"    validate:"required,min=2,max=200"`
	Email         string   `json:"email"            validate:"omitempty,email"`
	Telefono      string   `json:"phone"            validate:"max=100"`
	ProductoRef   *string  `json:"product_ref"      validate:"omitempty,uuid"`
	Descripcion   string   `json:"description"`
	FechaPedida   *string  `json:"requested_date"   validate:"omitempty,datetime=2006-01-02"`
	Imagenes      []string `json:"reference_images" validate:"omitempty,max=5,dive,url"`
}

// ActualizarPedidoRequest is the staff edit surface. Token and created are
// immutable and deliberately absent.
type ActualizarPedidoRequest struct {
	NombreCliente *string          `json:"customer_name"  validate:"omitempty,min=2,max=200"`
	Email         *string          `json:"email"          validate:"omitempty,email"`
	Telefono      *string          `json:"phone"          validate:"omitempty,max=100"`
	ProductoRef   *string          `json:"product_ref"    validate:"omitempty,uuid"`
	Descripcion   *string          `json:"description"`
	Plataforma    *string          `json:"platform"`
	FechaPedida   *string          `json:"requested_date" validate:"omitempty,datetime=2006-01-02"`
	PrecioTotal   *decimal.Decimal `json:"total_price"`
}

type CambiarEstadoRequest struct {
	Estado string `json:"status" validate:"required"`
}

type CambiarEstadoPagoRequest struct {
	EstadoPago string `json:"payment_status" validate:"required"`
}

type AgregarImagenRequest struct {
	URL string `json:"image" validate:"required,url"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PedidoImagenResponse struct {
	URL              string `json:"image"`
	CreatedAt        string `json:"created"`
	CreatedFormatted string `json:"created_formatted"` // yyyy-mm-dd HH:MM
}

type PedidoResponse struct {
	ID            string            `json:"id"`
	Token         string            `json:"token"`
	NombreCliente string            `json:"customer_name"`
	Email         string            `json:"email"`
	Telefono      string            `json:"phone"`
	Producto      *ProductoResponse `json:"product_ref,omitempty"`
	Descripcion   string            `json:"description"`
	Plataforma    string            `json:"platform"`
	FechaPedida   *string           `json:"requested_date"`
	Estado        string            `json:"status"`
	EstadoPago    string            `json:"payment_status"`
	PrecioTotal   *decimal.Decimal  `json:"total_price"`
	CreatedAt     string            `json:"created"`

	// Derived display fields — computed from the reference clock at mapping
	// time, never stored.
	CreatedFormatted     string  `json:"created_formatted"` // dd/mm/yyyy HH:MM
	DiasDesdeCreacion    int     `json:"days_since_creation"`
	FinalizacionEstimada *string `json:"estimated_completion"` // dd/mm/yyyy, solo en_proceso
	UrgenciaEntrega      string  `json:"delivery_urgency"`

	Imagenes []PedidoImagenResponse `json:"images"`
}

type SolicitudPedidoResponse struct {
	Token          string `json:"token"`
	URLSeguimiento string `json:"tracking_url"`
}

// PedidoListResponse is the paginated listing envelope. The filter echo
// carries the resolved range formatted for display.
type PedidoListResponse struct {
	Data  []PedidoResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`

	Filtro *FiltroAplicadoResponse `json:"filter,omitempty"`
}

// FiltroAplicadoResponse echoes the resolved date window for diagnostics.
type FiltroAplicadoResponse struct {
	DateFromFormatted string `json:"date_from_formatted,omitempty"`
	DateToFormatted   string `json:"date_to_formatted,omitempty"`
	AplicadoEn        string `json:"filter_applied_at"`
}
