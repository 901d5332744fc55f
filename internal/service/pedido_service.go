package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tiendaonline/internal/dto"
	"tiendaonline/internal/filtro"
	"tiendaonline/internal/model"
	"tiendaonline/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Umbrales de urgencia de entrega, en días hasta la fecha pedida.
const (
	diasEntregaUrgente = 2
	diasEntregaProxima = 7
)

// plazoEstimado is the production window quoted once an order enters
// en_proceso.
const plazoEstimado = 5 * 24 * time.Hour

// NotificadorSeguimiento queues the tracking email for an accepted order
// request. Implementations must not block on SMTP.
type NotificadorSeguimiento interface {
	NotificarSeguimiento(ctx context.Context, destinatario, nombreCliente, trackingURL string) error
}

type PedidoService struct {
	repo        repository.PedidoRepository
	productos   repository.ProductoRepository
	notificador NotificadorSeguimiento
	domain      string
	loc         *time.Location
	now         func() time.Time
	log         zerolog.Logger
}

func NewPedidoService(
	repo repository.PedidoRepository,
	productos repository.ProductoRepository,
	notificador NotificadorSeguimiento,
	domain string,
	loc *time.Location,
	log zerolog.Logger,
) *PedidoService {
	return &PedidoService{
		repo:        repo,
		productos:   productos,
		notificador: notificador,
		domain:      domain,
		loc:         loc,
		now:         time.Now,
		log:         log.With().Str("service", "pedidos").Logger(),
	}
}

// Solicitar creates a pedido from the public request form. Platform, status
// and payment status are forced server-side; the caller never chooses them.
func (s *PedidoService) Solicitar(ctx context.Context, req dto.SolicitudPedidoRequest) (*dto.SolicitudPedidoResponse, error) {
	p := &model.Pedido{
		Token:         uuid.New(),
		NombreCliente: req.NombreCliente,
		Email:         req.Email,
		Telefono:      req.Telefono,
		Descripcion:   req.Descripcion,
		Plataforma:    model.PlataformaWeb,
		Estado:        model.EstadoSolicitado,
		EstadoPago:    model.PagoPendiente,
	}

	if req.ProductoRef != nil && *req.ProductoRef != "" {
		productoID, err := uuid.Parse(*req.ProductoRef)
		if err != nil {
			return nil, &filtro.ErrorValidacion{Campo: "product_ref", Mensaje: "identificador de producto inválido"}
		}
		if _, err := s.productos.FindByID(ctx, productoID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &filtro.ErrorValidacion{Campo: "product_ref", Mensaje: "el producto no existe"}
			}
			return nil, fmt.Errorf("verificar producto: %w", err)
		}
		p.ProductoID = &productoID
	}

	if req.FechaPedida != nil && *req.FechaPedida != "" {
		t, err := time.ParseInLocation("2006-01-02", *req.FechaPedida, s.loc)
		if err != nil {
			return nil, &filtro.ErrorValidacion{Campo: "requested_date", Mensaje: "formato de fecha inválido (YYYY-MM-DD)"}
		}
		p.FechaPedida = &t
	}

	for i, url := range req.Imagenes {
		p.Imagenes = append(p.Imagenes, model.PedidoImagen{URL: url, Posicion: i})
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("crear pedido: %w", err)
	}

	trackingURL := s.domain + "/v1/pedidos/seguimiento/" + p.Token.String()
	s.log.Info().
		Str("pedido_id", p.ID.String()).
		Str("token", p.Token.String()).
		Msg("solicitud de pedido creada")

	// La confirmación por correo es best-effort: el pedido ya está creado.
	if req.Email != "" && s.notificador != nil {
		if err := s.notificador.NotificarSeguimiento(ctx, req.Email, req.NombreCliente, trackingURL); err != nil {
			s.log.Warn().Err(err).Str("pedido_id", p.ID.String()).Msg("no se pudo encolar el correo de seguimiento")
		}
	}

	return &dto.SolicitudPedidoResponse{Token: p.Token.String(), URLSeguimiento: trackingURL}, nil
}

// Seguimiento resolves a pedido by its public tracking token. A malformed
// token behaves exactly like an unknown one.
func (s *PedidoService) Seguimiento(ctx context.Context, token string) (*dto.PedidoResponse, error) {
	t, err := uuid.Parse(token)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	p, err := s.repo.FindByToken(ctx, t)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, fmt.Errorf("buscar por token: %w", err)
	}
	return s.mapPedido(p), nil
}

func (s *PedidoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, fmt.Errorf("obtener pedido: %w", err)
	}
	return s.mapPedido(p), nil
}

// Listar resolves the filter parameters and runs the listing. When the
// filters do not resolve, the endpoint degrades to an unfiltered
// most-recent-first listing instead of failing, keeping pagination intact.
func (s *PedidoService) Listar(ctx context.Context, params filtro.Parametros) (*dto.PedidoListResponse, error) {
	ahora := s.now().In(s.loc)

	var clausulas []filtro.Clausula
	var eco *dto.FiltroAplicadoResponse
	page, limit := params.Page, params.Limit

	resuelto, err := filtro.Resolver(params, ahora)
	if err != nil {
		var ev *filtro.ErrorValidacion
		if !errors.As(err, &ev) {
			return nil, err
		}
		s.log.Warn().Str("campo", ev.Campo).Str("motivo", ev.Mensaje).
			Msg("filtros de pedidos inválidos, listado sin filtrar")
	} else {
		clausulas = resuelto.Clausulas()
		page, limit = resuelto.Page, resuelto.Limit
		eco = &dto.FiltroAplicadoResponse{
			DateFromFormatted: resuelto.DateFromFormatted,
			DateToFormatted:   resuelto.DateToFormatted,
			AplicadoEn:        resuelto.AplicadoEn.Format(time.RFC3339),
		}
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	pedidos, total, err := s.repo.List(ctx, clausulas, page, limit)
	if err != nil {
		return nil, fmt.Errorf("listar pedidos: %w", err)
	}

	out := make([]dto.PedidoResponse, 0, len(pedidos))
	for i := range pedidos {
		out = append(out, *s.mapPedidoEn(&pedidos[i], ahora))
	}
	return &dto.PedidoListResponse{Data: out, Total: total, Page: page, Limit: limit, Filtro: eco}, nil
}

// ListarPorFecha lists pedidos created in a calendar partition: a whole year,
// a month, or a single day, in the reference timezone.
func (s *PedidoService) ListarPorFecha(ctx context.Context, year, month, day, page, limit int) (*dto.PedidoListResponse, error) {
	if year < 2000 || year > 2100 {
		return nil, &filtro.ErrorValidacion{Campo: "year", Mensaje: "año fuera de rango"}
	}

	var desde, hasta time.Time
	switch {
	case month == 0:
		desde = time.Date(year, time.January, 1, 0, 0, 0, 0, s.loc)
		hasta = desde.AddDate(1, 0, 0).Add(-time.Nanosecond)
	case day == 0:
		if month < 1 || month > 12 {
			return nil, &filtro.ErrorValidacion{Campo: "month", Mensaje: "mes inválido"}
		}
		desde = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.loc)
		hasta = desde.AddDate(0, 1, 0).Add(-time.Nanosecond)
	default:
		if month < 1 || month > 12 {
			return nil, &filtro.ErrorValidacion{Campo: "month", Mensaje: "mes inválido"}
		}
		desde = time.Date(year, time.Month(month), day, 0, 0, 0, 0, s.loc)
		// time.Date normalizes overflow (feb 30 → mar 2); reject it.
		if desde.Day() != day || desde.Month() != time.Month(month) {
			return nil, &filtro.ErrorValidacion{Campo: "day", Mensaje: "día inválido"}
		}
		hasta = filtro.FinDelDia(desde)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	pedidos, total, err := s.repo.List(ctx, filtro.RangoCreacion(desde, hasta), page, limit)
	if err != nil {
		return nil, fmt.Errorf("listar pedidos por fecha: %w", err)
	}

	ahora := s.now().In(s.loc)
	out := make([]dto.PedidoResponse, 0, len(pedidos))
	for i := range pedidos {
		out = append(out, *s.mapPedidoEn(&pedidos[i], ahora))
	}
	return &dto.PedidoListResponse{Data: out, Total: total, Page: page, Limit: limit}, nil
}

func (s *PedidoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPedidoRequest) (*dto.PedidoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, fmt.Errorf("obtener pedido: %w", err)
	}

	if req.NombreCliente != nil {
		p.NombreCliente = *req.NombreCliente
	}
	if req.Email != nil {
		p.Email = *req.Email
	}
	if req.Telefono != nil {
		p.Telefono = *req.Telefono
	}
	if req.Descripcion != nil {
		p.Descripcion = *req.Descripcion
	}
	if req.Plataforma != nil {
		if !model.PlataformaValida(*req.Plataforma) {
			return nil, &filtro.ErrorValidacion{Campo: "platform", Mensaje: fmt.Sprintf("plataforma %q no válida", *req.Plataforma)}
		}
		p.Plataforma = *req.Plataforma
	}
	if req.ProductoRef != nil {
		if *req.ProductoRef == "" {
			p.ProductoID = nil
			p.Producto = nil
		} else {
			productoID, err := uuid.Parse(*req.ProductoRef)
			if err != nil {
				return nil, &filtro.ErrorValidacion{Campo: "product_ref", Mensaje: "identificador de producto inválido"}
			}
			if _, err := s.productos.FindByID(ctx, productoID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, &filtro.ErrorValidacion{Campo: "product_ref", Mensaje: "el producto no existe"}
				}
				return nil, fmt.Errorf("verificar producto: %w", err)
			}
			p.ProductoID = &productoID
			p.Producto = nil
		}
	}
	if req.FechaPedida != nil {
		if *req.FechaPedida == "" {
			p.FechaPedida = nil
		} else {
			t, err := time.ParseInLocation("2006-01-02", *req.FechaPedida, s.loc)
			if err != nil {
				return nil, &filtro.ErrorValidacion{Campo: "requested_date", Mensaje: "formato de fecha inválido (YYYY-MM-DD)"}
			}
			p.FechaPedida = &t
		}
	}
	if req.PrecioTotal != nil {
		p.PrecioTotal = req.PrecioTotal
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("actualizar pedido: %w", err)
	}

	actualizado, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("releer pedido: %w", err)
	}
	return s.mapPedido(actualizado), nil
}

// CambiarEstado moves the pedido to a new lifecycle status. Any valid status
// is reachable from any other; only unknown tokens are rejected.
func (s *PedidoService) CambiarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.PedidoResponse, error) {
	if !model.EstadoPedidoValido(estado) {
		return nil, &filtro.ErrorValidacion{Campo: "status", Mensaje: fmt.Sprintf("estado %q no válido", estado)}
	}

	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, fmt.Errorf("obtener pedido: %w", err)
	}

	anterior := p.Estado
	if err := s.repo.UpdateEstado(ctx, id, estado); err != nil {
		return nil, fmt.Errorf("cambiar estado: %w", err)
	}
	p.Estado = estado

	s.log.Info().
		Str("pedido_id", id.String()).
		Str("estado_anterior", anterior).
		Str("estado_nuevo", estado).
		Msg("estado de pedido actualizado")
	return s.mapPedido(p), nil
}

func (s *PedidoService) CambiarEstadoPago(ctx context.Context, id uuid.UUID, estadoPago string) (*dto.PedidoResponse, error) {
	if !model.EstadoPagoValido(estadoPago) {
		return nil, &filtro.ErrorValidacion{Campo: "payment_status", Mensaje: fmt.Sprintf("estado de pago %q no válido", estadoPago)}
	}

	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, fmt.Errorf("obtener pedido: %w", err)
	}

	if err := s.repo.UpdateEstadoPago(ctx, id, estadoPago); err != nil {
		return nil, fmt.Errorf("cambiar estado de pago: %w", err)
	}
	p.EstadoPago = estadoPago
	return s.mapPedido(p), nil
}

func (s *PedidoService) AgregarImagen(ctx context.Context, id uuid.UUID, url string) (*dto.PedidoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, fmt.Errorf("obtener pedido: %w", err)
	}

	img := &model.PedidoImagen{PedidoID: id, URL: url, Posicion: len(p.Imagenes)}
	if err := s.repo.AgregarImagen(ctx, img); err != nil {
		return nil, fmt.Errorf("agregar imagen: %w", err)
	}

	actualizado, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("releer pedido: %w", err)
	}
	return s.mapPedido(actualizado), nil
}

// ── Mapping ───────────────────────────────────────────────────────────────────

func (s *PedidoService) mapPedido(p *model.Pedido) *dto.PedidoResponse {
	return s.mapPedidoEn(p, s.now().In(s.loc))
}

// mapPedidoEn builds the response with its derived display fields evaluated
// against an explicit reference instant. Nothing derived is ever persisted.
func (s *PedidoService) mapPedidoEn(p *model.Pedido, ahora time.Time) *dto.PedidoResponse {
	creado := p.CreatedAt.In(ahora.Location())

	resp := &dto.PedidoResponse{
		ID:                p.ID.String(),
		Token:             p.Token.String(),
		NombreCliente:     p.NombreCliente,
		Email:             p.Email,
		Telefono:          p.Telefono,
		Descripcion:       p.Descripcion,
		Plataforma:        p.Plataforma,
		Estado:            p.Estado,
		EstadoPago:        p.EstadoPago,
		PrecioTotal:       p.PrecioTotal,
		CreatedAt:         creado.Format(time.RFC3339),
		CreatedFormatted:  creado.Format(formatoDisplay + " 15:04"),
		DiasDesdeCreacion: diasEntre(p.CreatedAt, ahora),
		UrgenciaEntrega:   urgenciaEntrega(p.FechaPedida, ahora),
		Imagenes:          make([]dto.PedidoImagenResponse, 0, len(p.Imagenes)),
	}

	if p.FechaPedida != nil {
		f := p.FechaPedida.Format("2006-01-02")
		resp.FechaPedida = &f
	}
	if p.Estado == model.EstadoEnProceso {
		estimada := creado.Add(plazoEstimado).Format(formatoDisplay)
		resp.FinalizacionEstimada = &estimada
	}
	if p.Producto != nil {
		resp.Producto = mapProducto(p.Producto, ahora)
	}
	for _, img := range p.Imagenes {
		c := img.CreatedAt.In(ahora.Location())
		resp.Imagenes = append(resp.Imagenes, dto.PedidoImagenResponse{
			URL:              img.URL,
			CreatedAt:        c.Format(time.RFC3339),
			CreatedFormatted: c.Format("2006-01-02 15:04"),
		})
	}
	return resp
}

// urgenciaEntrega grades how close the requested delivery date is. A pedido
// without fecha pedida carries no grade.
func urgenciaEntrega(fechaPedida *time.Time, ahora time.Time) string {
	if fechaPedida == nil {
		return "No especificado"
	}
	dias := diasHasta(*fechaPedida, ahora)
	switch {
	case dias < 0:
		return "Atrasado"
	case dias <= diasEntregaUrgente:
		return "Urgente"
	case dias <= diasEntregaProxima:
		return "Próximo"
	default:
		return "Normal"
	}
}
