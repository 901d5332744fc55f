package dto

import "github.com/shopspring/decimal"

// ─── Statistics report ───────────────────────────────────────────────────────

type PeriodoResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

type TotalesResponse struct {
	Pedidos  int64           `json:"orders"`
	Ingresos decimal.Decimal `json:"revenue"`
	// ValorPromedio is 0 when there are no orders — never NaN, never an error.
	ValorPromedio decimal.Decimal `json:"avg_order_value"`
}

// BucketResponse is one group-by row: a categorical key with its count.
type BucketResponse struct {
	Clave    string `json:"key"`
	Cantidad int64  `json:"count"`
}

type ProductoPopularResponse struct {
	ProductoID string          `json:"product_id"`
	Nombre     string          `json:"product_name"`
	Cantidad   int64           `json:"count"`
	Ingresos   decimal.Decimal `json:"revenue"`
}

type DiaTendenciaResponse struct {
	Fecha    string `json:"date"` // YYYY-MM-DD
	Cantidad int64  `json:"count"`
}

type EstadisticasResponse struct {
	Periodo            PeriodoResponse           `json:"period"`
	Totales            TotalesResponse           `json:"totals"`
	PorEstado          []BucketResponse          `json:"by_status"`
	PorPlataforma      []BucketResponse          `json:"by_platform"`
	ProductosPopulares []ProductoPopularResponse `json:"popular_products"`
	TendenciaDiaria    []DiaTendenciaResponse    `json:"daily_trend"`
}

// ─── Dashboard quick stats ───────────────────────────────────────────────────

type VentanaResponse struct {
	Pedidos  int64           `json:"orders"`
	Ingresos decimal.Decimal `json:"revenue"`
}

type DashboardResponse struct {
	Hoy               VentanaResponse          `json:"today"`
	EstaSemana        VentanaResponse          `json:"this_week"`
	EsteMes           VentanaResponse          `json:"this_month"`
	PedidosPendientes int64                    `json:"pending_orders"`
	PedidosEnProceso  int64                    `json:"in_progress_orders"`
	ProductoTop       *ProductoPopularResponse `json:"top_product"`
}

// ─── Chart data ──────────────────────────────────────────────────────────────

// GraficoResponse carries parallel arrays ready for a chart widget.
type GraficoResponse struct {
	Labels []string `json:"labels"`
	Data   []int64  `json:"data"`
}

// ─── Inventory report ────────────────────────────────────────────────────────

type ProductoInventarioResponse struct {
	ProductoID    string          `json:"product_id"`
	Nombre        string          `json:"product_name"`
	Precio        decimal.Decimal `json:"product_price"`
	Cantidad      int64           `json:"order_count"`
	Ingresos      decimal.Decimal `json:"total_revenue"`
	ValorPromedio decimal.Decimal `json:"avg_order_value"`
}

type CategoriaInventarioResponse struct {
	Categoria string          `json:"category_name"`
	Cantidad  int64           `json:"order_count"`
	Ingresos  decimal.Decimal `json:"total_revenue"`
}

type InventarioResponse struct {
	ProductosTop []ProductoInventarioResponse  `json:"top_products"`
	PorCategoria []CategoriaInventarioResponse `json:"by_category"`
}
