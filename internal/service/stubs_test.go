package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"tiendaonline/internal/filtro"
	"tiendaonline/internal/model"
	"tiendaonline/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── In-memory PedidoRepository stub ──────────────────────────────────────────

type infoProducto struct {
	Nombre    string
	Precio    decimal.Decimal
	Categoria string
}

type stubPedidoRepo struct {
	pedidos   []*model.Pedido
	productos map[uuid.UUID]infoProducto
	imagenes  []*model.PedidoImagen
}

func newStubPedidoRepo() *stubPedidoRepo {
	return &stubPedidoRepo{productos: make(map[uuid.UUID]infoProducto)}
}

func (r *stubPedidoRepo) agregar(p model.Pedido) *model.Pedido {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Token == uuid.Nil {
		p.Token = uuid.New()
	}
	copia := p
	r.pedidos = append(r.pedidos, &copia)
	return &copia
}

func enLista(valores []string, s string) bool {
	for _, v := range valores {
		if v == s {
			return true
		}
	}
	return false
}

func cumple(p *model.Pedido, clausulas []filtro.Clausula) bool {
	for _, c := range clausulas {
		switch c.Campo {
		case "estado":
			switch c.Op {
			case filtro.OpEn:
				if !enLista(c.Valor.([]string), p.Estado) {
					return false
				}
			default:
				if p.Estado != c.Valor.(string) {
					return false
				}
			}
		case "plataforma":
			if p.Plataforma != c.Valor.(string) {
				return false
			}
		case "estado_pago":
			if p.EstadoPago != c.Valor.(string) {
				return false
			}
		case "nombre_cliente":
			if !strings.Contains(strings.ToLower(p.NombreCliente), strings.ToLower(c.Valor.(string))) {
				return false
			}
		case "producto_id":
			if p.ProductoID == nil || *p.ProductoID != c.Valor.(uuid.UUID) {
				return false
			}
		case "created_at":
			v := c.Valor.(time.Time)
			if c.Op == filtro.OpDesde && p.CreatedAt.Before(v) {
				return false
			}
			if c.Op == filtro.OpHasta && p.CreatedAt.After(v) {
				return false
			}
		}
	}
	return true
}

func (r *stubPedidoRepo) filtrar(clausulas []filtro.Clausula) []*model.Pedido {
	var out []*model.Pedido
	for _, p := range r.pedidos {
		if cumple(p, clausulas) {
			out = append(out, p)
		}
	}
	return out
}

func (r *stubPedidoRepo) Create(_ context.Context, p *model.Pedido) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.pedidos = append(r.pedidos, p)
	return nil
}

func (r *stubPedidoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pedido, error) {
	for _, p := range r.pedidos {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPedidoRepo) FindByToken(_ context.Context, token uuid.UUID) (*model.Pedido, error) {
	for _, p := range r.pedidos {
		if p.Token == token {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPedidoRepo) Update(_ context.Context, p *model.Pedido) error {
	for i, existente := range r.pedidos {
		if existente.ID == p.ID {
			r.pedidos[i] = p
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubPedidoRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string) error {
	for _, p := range r.pedidos {
		if p.ID == id {
			p.Estado = estado
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubPedidoRepo) UpdateEstadoPago(_ context.Context, id uuid.UUID, estadoPago string) error {
	for _, p := range r.pedidos {
		if p.ID == id {
			p.EstadoPago = estadoPago
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubPedidoRepo) AgregarImagen(_ context.Context, img *model.PedidoImagen) error {
	if img.ID == uuid.Nil {
		img.ID = uuid.New()
	}
	r.imagenes = append(r.imagenes, img)
	for _, p := range r.pedidos {
		if p.ID == img.PedidoID {
			p.Imagenes = append(p.Imagenes, *img)
		}
	}
	return nil
}

func (r *stubPedidoRepo) List(_ context.Context, clausulas []filtro.Clausula, page, limit int) ([]model.Pedido, int64, error) {
	filtrados := r.filtrar(clausulas)
	sort.SliceStable(filtrados, func(i, j int) bool {
		return filtrados[i].CreatedAt.After(filtrados[j].CreatedAt)
	})

	total := int64(len(filtrados))
	inicio := (page - 1) * limit
	if inicio > len(filtrados) {
		inicio = len(filtrados)
	}
	fin := inicio + limit
	if fin > len(filtrados) {
		fin = len(filtrados)
	}

	out := make([]model.Pedido, 0, fin-inicio)
	for _, p := range filtrados[inicio:fin] {
		out = append(out, *p)
	}
	return out, total, nil
}

func (r *stubPedidoRepo) Contar(_ context.Context, clausulas []filtro.Clausula) (int64, error) {
	return int64(len(r.filtrar(clausulas))), nil
}

func (r *stubPedidoRepo) SumarIngresos(_ context.Context, clausulas []filtro.Clausula) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range r.filtrar(clausulas) {
		if p.PrecioTotal != nil {
			total = total.Add(*p.PrecioTotal)
		}
	}
	return total, nil
}

func (r *stubPedidoRepo) ContarPorCampo(_ context.Context, campo string, clausulas []filtro.Clausula) ([]repository.FilaBucket, error) {
	cuentas := make(map[string]int64)
	var orden []string
	for _, p := range r.filtrar(clausulas) {
		clave := p.Estado
		if campo == "plataforma" {
			clave = p.Plataforma
		}
		if _, visto := cuentas[clave]; !visto {
			orden = append(orden, clave)
		}
		cuentas[clave]++
	}

	out := make([]repository.FilaBucket, 0, len(orden))
	for _, clave := range orden {
		out = append(out, repository.FilaBucket{Clave: clave, Cantidad: cuentas[clave]})
	}
	return out, nil
}

func (r *stubPedidoRepo) ContarPorDia(_ context.Context, clausulas []filtro.Clausula, timezone string) ([]repository.FilaDia, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	cuentas := make(map[string]int64)
	var orden []string
	for _, p := range r.filtrar(clausulas) {
		clave := p.CreatedAt.In(loc).Format("2006-01-02")
		if _, visto := cuentas[clave]; !visto {
			orden = append(orden, clave)
		}
		cuentas[clave]++
	}

	out := make([]repository.FilaDia, 0, len(orden))
	for _, clave := range orden {
		out = append(out, repository.FilaDia{Fecha: clave, Cantidad: cuentas[clave]})
	}
	return out, nil
}

func (r *stubPedidoRepo) AgruparPorProducto(_ context.Context, clausulas []filtro.Clausula, excluirCancelados bool) ([]repository.FilaProducto, error) {
	type acumulado struct {
		cantidad int64
		ingresos decimal.Decimal
	}
	grupos := make(map[uuid.UUID]*acumulado)
	var orden []uuid.UUID

	for _, p := range r.filtrar(clausulas) {
		if p.ProductoID == nil {
			continue
		}
		if excluirCancelados && p.Estado == model.EstadoCancelada {
			continue
		}
		g, visto := grupos[*p.ProductoID]
		if !visto {
			g = &acumulado{ingresos: decimal.Zero}
			grupos[*p.ProductoID] = g
			orden = append(orden, *p.ProductoID)
		}
		g.cantidad++
		if p.PrecioTotal != nil {
			g.ingresos = g.ingresos.Add(*p.PrecioTotal)
		}
	}

	out := make([]repository.FilaProducto, 0, len(orden))
	for _, id := range orden {
		info := r.productos[id]
		g := grupos[id]
		out = append(out, repository.FilaProducto{
			ProductoID: id.String(),
			Nombre:     info.Nombre,
			Precio:     info.Precio,
			Cantidad:   g.cantidad,
			Ingresos:   g.ingresos,
		})
	}
	return out, nil
}

func (r *stubPedidoRepo) AgruparPorCategoria(_ context.Context) ([]repository.FilaCategoria, error) {
	type acumulado struct {
		cantidad int64
		ingresos decimal.Decimal
	}
	grupos := make(map[string]*acumulado)
	var orden []string

	for _, p := range r.pedidos {
		if p.ProductoID == nil {
			continue
		}
		categoria := r.productos[*p.ProductoID].Categoria
		g, visto := grupos[categoria]
		if !visto {
			g = &acumulado{ingresos: decimal.Zero}
			grupos[categoria] = g
			orden = append(orden, categoria)
		}
		g.cantidad++
		if p.PrecioTotal != nil {
			g.ingresos = g.ingresos.Add(*p.PrecioTotal)
		}
	}

	out := make([]repository.FilaCategoria, 0, len(orden))
	for _, c := range orden {
		out = append(out, repository.FilaCategoria{Categoria: c, Cantidad: grupos[c].cantidad, Ingresos: grupos[c].ingresos})
	}
	return out, nil
}

// ── In-memory ProductoRepository stub ────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) FindBySlug(_ context.Context, slug string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) ExisteSlug(_ context.Context, slug string) (bool, error) {
	_, err := r.FindBySlug(context.Background(), slug)
	return err == nil, nil
}

func (r *stubProductoRepo) Buscar(_ context.Context, criteria repository.CatalogoCriteria) ([]model.Producto, int64, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if criteria.Destacado != nil && p.Destacado != *criteria.Destacado {
			continue
		}
		if criteria.MinPrecio != nil && p.Precio.LessThan(*criteria.MinPrecio) {
			continue
		}
		if criteria.MaxPrecio != nil && p.Precio.GreaterThan(*criteria.MaxPrecio) {
			continue
		}
		if criteria.Busqueda != "" && !strings.Contains(strings.ToLower(p.Nombre), strings.ToLower(criteria.Busqueda)) {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.productos, id)
	return nil
}

// ── In-memory InsumoRepository stub ──────────────────────────────────────────

type stubInsumoRepo struct {
	insumos map[uuid.UUID]*model.Insumo
}

func newStubInsumoRepo() *stubInsumoRepo {
	return &stubInsumoRepo{insumos: make(map[uuid.UUID]*model.Insumo)}
}

func (r *stubInsumoRepo) Create(_ context.Context, i *model.Insumo) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	r.insumos[i.ID] = i
	return nil
}

func (r *stubInsumoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Insumo, error) {
	i, ok := r.insumos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return i, nil
}

func (r *stubInsumoRepo) List(_ context.Context, _ repository.InsumoCriteria) ([]model.Insumo, error) {
	out := make([]model.Insumo, 0, len(r.insumos))
	for _, i := range r.insumos {
		out = append(out, *i)
	}
	return out, nil
}

func (r *stubInsumoRepo) Update(_ context.Context, i *model.Insumo) error {
	r.insumos[i.ID] = i
	return nil
}

func (r *stubInsumoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.insumos, id)
	return nil
}

func (r *stubInsumoRepo) AjustarStock(_ context.Context, id uuid.UUID, delta int) (bool, error) {
	i, ok := r.insumos[id]
	if !ok {
		return false, nil
	}
	nueva := i.Cantidad.Add(decimal.NewFromInt(int64(delta)))
	if nueva.IsNegative() {
		return false, nil
	}
	i.Cantidad = nueva
	return true, nil
}

// ── Notifier stub ─────────────────────────────────────────────────────────────

type notificacion struct {
	Destinatario string
	Nombre       string
	TrackingURL  string
}

type stubNotificador struct {
	enviadas []notificacion
}

func (n *stubNotificador) NotificarSeguimiento(_ context.Context, destinatario, nombre, trackingURL string) error {
	n.enviadas = append(n.enviadas, notificacion{destinatario, nombre, trackingURL})
	return nil
}
