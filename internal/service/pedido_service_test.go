package service

import (
	"context"
	"testing"
	"time"

	"tiendaonline/internal/dto"
	"tiendaonline/internal/filtro"
	"tiendaonline/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func servicioPedidos(repo *stubPedidoRepo, productos *stubProductoRepo, notif *stubNotificador, loc *time.Location, ahora time.Time) *PedidoService {
	svc := NewPedidoService(repo, productos, notif, "http://tienda.test", loc, zerolog.Nop())
	svc.now = func() time.Time { return ahora }
	return svc
}

func TestSolicitarFuerzaValoresIniciales(t *testing.T) {
	loc := zonaDePrueba(t)
	ahora := time.Date(2024, 1, 20, 12, 0, 0, 0, loc)
	repo := newStubPedidoRepo()
	productos := newStubProductoRepo()
	notif := &stubNotificador{}
	svc := servicioPedidos(repo, productos, notif, loc, ahora)

	resp, err := svc.Solicitar(context.Background(), dto.SolicitudPedidoRequest{
		NombreCliente: "María González",
		Email:         "maria@example.com",
		Imagenes:      []string{"https://img.test/a.png", "https://img.test/b.png"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Contains(t, resp.URLSeguimiento, resp.Token)

	require.Len(t, repo.pedidos, 1)
	p := repo.pedidos[0]
	assert.Equal(t, model.EstadoSolicitado, p.Estado)
	assert.Equal(t, model.PagoPendiente, p.EstadoPago)
	assert.Equal(t, model.PlataformaWeb, p.Plataforma)
	require.Len(t, p.Imagenes, 2)
	assert.Equal(t, 0, p.Imagenes[0].Posicion)
	assert.Equal(t, 1, p.Imagenes[1].Posicion)

	// El correo de seguimiento se encola con el link público.
	require.Len(t, notif.enviadas, 1)
	assert.Equal(t, "maria@example.com", notif.enviadas[0].Destinatario)
	assert.Contains(t, notif.enviadas[0].TrackingURL, resp.Token)
}

func TestSolicitarSinEmailNoNotifica(t *testing.T) {
	loc := zonaDePrueba(t)
	ahora := time.Date(2024, 1, 20, 12, 0, 0, 0, loc)
	notif := &stubNotificador{}
	svc := servicioPedidos(newStubPedidoRepo(), newStubProductoRepo(), notif, loc, ahora)

	_, err := svc.Solicitar(context.Background(), dto.SolicitudPedidoRequest{NombreCliente: "Juan"})
	require.NoError(t, err)
	assert.Empty(t, notif.enviadas)
}

func TestSolicitarProductoInexistente(t *testing.T) {
	loc := zonaDePrueba(t)
	ahora := time.Date(2024, 1, 20, 12, 0, 0, 0, loc)
	svc := servicioPedidos(newStubPedidoRepo(), newStubProductoRepo(), &stubNotificador{}, loc, ahora)

	ref := uuid.NewString()
	_, err := svc.Solicitar(context.Background(), dto.SolicitudPedidoRequest{
		NombreCliente: "Juan",
		ProductoRef:   &ref,
	})
	var ev *filtro.ErrorValidacion
	require.ErrorAs(t, err, &ev)
	assert.Equal(t, "product_ref", ev.Campo)
}

func TestSeguimientoTokenDesconocido(t *testing.T) {
	loc := zonaDePrueba(t)
	ahora := time.Date(2024, 1, 20, 12, 0, 0, 0, loc)
	svc := servicioPedidos(newStubPedidoRepo(), newStubProductoRepo(), &stubNotificador{}, loc, ahora)

	// Token bien formado pero inexistente, y token malformado: mismo resultado.
	_, err := svc.Seguimiento(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNoEncontrado)
	_, err = svc.Seguimiento(context.Background(), "cualquier-cosa")
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestCambiarEstadoTokenInvalido(t *testing.T) {
	loc := zonaDePrueba(t)
	ahora := time.Date(2024, 1, 20, 12, 0, 0, 0, loc)
	repo := newStubPedidoRepo()
	p := repo.agregar(model.Pedido{NombreCliente: "Juan", Estado: model.EstadoSolicitado,
		EstadoPago: model.PagoPendiente, Plataforma: model.PlataformaWeb, CreatedAt: ahora})
	svc := servicioPedidos(repo, newStubProductoRepo(), &stubNotificador{}, loc, ahora)

	_, err := svc.CambiarEstado(context.Background(), p.ID, "bogus")
	var ev *filtro.ErrorValidacion
	require.ErrorAs(t, err, &ev)
	assert.Equal(t, "status", ev.Campo)
	// El pedido no cambió.
	assert.Equal(t, model.EstadoSolicitado, p.Estado)

	resp, err := svc.CambiarEstado(context.Background(), p.ID, model.EstadoAprobado)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoAprobado, resp.Estado)
}

func TestCambiarEstadoPago(t *testing.T) {
	loc := zonaDePrueba(t)
	ahora := time.Date(2024, 1, 20, 12, 0, 0, 0, loc)
	repo := newStubPedidoRepo()
	p := repo.agregar(model.Pedido{NombreCliente: "Juan", Estado: model.EstadoSolicitado,
		EstadoPago: model.PagoPendiente, Plataforma: model.PlataformaWeb, CreatedAt: ahora})
	svc := servicioPedidos(repo, newStubProductoRepo(), &stubNotificador{}, loc, ahora)

	_, err := svc.CambiarEstadoPago(context.Background(), p.ID, "gratis")
	var ev *filtro.ErrorValidacion
	require.ErrorAs(t, err, &ev)
	assert.Equal(t, "payment_status", ev.Campo)

	resp, err := svc.CambiarEstadoPago(context.Background(), p.ID, model.PagoParcial)
	require.NoError(t, err)
	assert.Equal(t, model.PagoParcial, resp.EstadoPago)
}

func TestListarConFiltrosInvalidosDegradaSinFiltrar(t *testing.T) {
	loc := zonaDePrueba(t)
	ahora := time.Date(2024, 1, 20, 12, 0, 0, 0, loc)
	repo := newStubPedidoRepo()
	repo.agregar(model.Pedido{NombreCliente: "A", Estado: model.EstadoSolicitado,
		EstadoPago: model.PagoPendiente, Plataforma: model.PlataformaWeb,
		CreatedAt: time.Date(2024, 1, 10, 9, 0, 0, 0, loc)})
	repo.agregar(model.Pedido{NombreCliente: "B", Estado: model.EstadoEntregada,
		EstadoPago: model.PagoPagado, Plataforma: model.PlataformaWeb,
		CreatedAt: time.Date(2024, 1, 15, 9, 0, 0, 0, loc)})
	svc := servicioPedidos(repo, newStubProductoRepo(), &stubNotificador{}, loc, ahora)

	// Atajos en conflicto: en lugar de fallar se listan todos, más reciente primero.
	resp, err := svc.Listar(context.Background(), filtro.Parametros{
		LastDays: 7, ThisMonth: "true", Page: 1, Limit: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "B", resp.Data[0].NombreCliente)
	assert.Nil(t, resp.Filtro)
}

func TestListarConFiltroAplicado(t *testing.T) {
	loc := zonaDePrueba(t)
	ahora := time.Date(2024, 1, 20, 12, 0, 0, 0, loc)
	repo := newStubPedidoRepo()
	repo.agregar(model.Pedido{NombreCliente: "A", Estado: model.EstadoSolicitado,
		EstadoPago: model.PagoPendiente, Plataforma: model.PlataformaWeb,
		CreatedAt: time.Date(2024, 1, 10, 9, 0, 0, 0, loc)})
	repo.agregar(model.Pedido{NombreCliente: "B", Estado: model.EstadoEntregada,
		EstadoPago: model.PagoPagado, Plataforma: model.PlataformaWeb,
		CreatedAt: time.Date(2024, 1, 15, 9, 0, 0, 0, loc)})
	svc := servicioPedidos(repo, newStubProductoRepo(), &stubNotificador{}, loc, ahora)

	resp, err := svc.Listar(context.Background(), filtro.Parametros{
		Estado: model.EstadoSolicitado, DateFrom: "2024-01-01", DateTo: "2024-01-12",
		Page: 1, Limit: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	require.NotNil(t, resp.Filtro)
	assert.Equal(t, "01/01/2024", resp.Filtro.DateFromFormatted)
	assert.Equal(t, "12/01/2024", resp.Filtro.DateToFormatted)
	assert.NotEmpty(t, resp.Filtro.AplicadoEn)
}

func TestListarPorFechaParticiones(t *testing.T) {
	loc := zonaDePrueba(t)
	ahora := time.Date(2024, 2, 1, 12, 0, 0, 0, loc)
	repo := newStubPedidoRepo()
	repo.agregar(model.Pedido{NombreCliente: "enero", Estado: model.EstadoSolicitado,
		EstadoPago: model.PagoPendiente, Plataforma: model.PlataformaWeb,
		CreatedAt: time.Date(2024, 1, 15, 9, 0, 0, 0, loc)})
	repo.agregar(model.Pedido{NombreCliente: "diciembre", Estado: model.EstadoSolicitado,
		EstadoPago: model.PagoPendiente, Plataforma: model.PlataformaWeb,
		CreatedAt: time.Date(2023, 12, 31, 23, 0, 0, 0, loc)})
	svc := servicioPedidos(repo, newStubProductoRepo(), &stubNotificador{}, loc, ahora)

	resp, err := svc.ListarPorFecha(context.Background(), 2024, 0, 0, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)

	resp, err = svc.ListarPorFecha(context.Background(), 2023, 12, 0, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, "diciembre", resp.Data[0].NombreCliente)

	resp, err = svc.ListarPorFecha(context.Background(), 2024, 1, 15, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)

	// Día que no existe en el calendario.
	_, err = svc.ListarPorFecha(context.Background(), 2024, 2, 30, 1, 50)
	var ev *filtro.ErrorValidacion
	require.ErrorAs(t, err, &ev)
	assert.Equal(t, "day", ev.Campo)
}

func TestCamposDerivadosDelPedido(t *testing.T) {
	loc := zonaDePrueba(t)
	ahora := time.Date(2024, 1, 20, 12, 0, 0, 0, loc)
	repo := newStubPedidoRepo()
	precioTotal := decimal.NewFromInt(1500)
	fechaPedida := time.Date(2024, 1, 10, 0, 0, 0, 0, loc)
	p := repo.agregar(model.Pedido{NombreCliente: "Juan", Estado: model.EstadoEnProceso,
		EstadoPago: model.PagoParcial, Plataforma: model.PlataformaInstagram,
		PrecioTotal: &precioTotal, FechaPedida: &fechaPedida,
		CreatedAt: time.Date(2024, 1, 10, 15, 45, 0, 0, loc)})
	svc := servicioPedidos(repo, newStubProductoRepo(), &stubNotificador{}, loc, ahora)

	resp, err := svc.Obtener(context.Background(), p.ID)
	require.NoError(t, err)

	assert.Equal(t, "10/01/2024 15:45", resp.CreatedFormatted)
	assert.Equal(t, 10, resp.DiasDesdeCreacion)
	// En proceso: fecha estimada = creación + 5 días.
	require.NotNil(t, resp.FinalizacionEstimada)
	assert.Equal(t, "15/01/2024", *resp.FinalizacionEstimada)
	// La fecha pedida quedó diez días atrás: el pedido está atrasado aunque
	// lleve pocos días creado.
	assert.Equal(t, "Atrasado", resp.UrgenciaEntrega)
}

func TestFinalizacionEstimadaSoloEnProceso(t *testing.T) {
	loc := zonaDePrueba(t)
	ahora := time.Date(2024, 1, 20, 12, 0, 0, 0, loc)
	repo := newStubPedidoRepo()
	p := repo.agregar(model.Pedido{NombreCliente: "Juan", Estado: model.EstadoSolicitado,
		EstadoPago: model.PagoPendiente, Plataforma: model.PlataformaWeb,
		CreatedAt: time.Date(2024, 1, 19, 9, 0, 0, 0, loc)})
	svc := servicioPedidos(repo, newStubProductoRepo(), &stubNotificador{}, loc, ahora)

	resp, err := svc.Obtener(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Nil(t, resp.FinalizacionEstimada)
	// Sin fecha pedida no hay grado de urgencia.
	assert.Equal(t, "No especificado", resp.UrgenciaEntrega)
}

func TestUrgenciaEntregaPorFechaPedida(t *testing.T) {
	loc := zonaDePrueba(t)
	ahora := time.Date(2024, 1, 20, 12, 0, 0, 0, loc)

	casos := []struct {
		dias     int // días hasta la fecha pedida
		esperado string
	}{
		{-10, "Atrasado"},
		{-1, "Atrasado"},
		{0, "Urgente"},
		{2, "Urgente"},
		{3, "Próximo"},
		{7, "Próximo"},
		{8, "Normal"},
		{30, "Normal"},
	}
	for _, c := range casos {
		fecha := ahora.AddDate(0, 0, c.dias)
		assert.Equal(t, c.esperado, urgenciaEntrega(&fecha, ahora), "dias %d", c.dias)
	}
	assert.Equal(t, "No especificado", urgenciaEntrega(nil, ahora))
}

func TestActualizarPlataformaInvalida(t *testing.T) {
	loc := zonaDePrueba(t)
	ahora := time.Date(2024, 1, 20, 12, 0, 0, 0, loc)
	repo := newStubPedidoRepo()
	p := repo.agregar(model.Pedido{NombreCliente: "Juan", Estado: model.EstadoSolicitado,
		EstadoPago: model.PagoPendiente, Plataforma: model.PlataformaWeb, CreatedAt: ahora})
	svc := servicioPedidos(repo, newStubProductoRepo(), &stubNotificador{}, loc, ahora)

	mala := "telegram"
	_, err := svc.Actualizar(context.Background(), p.ID, dto.ActualizarPedidoRequest{Plataforma: &mala})
	var ev *filtro.ErrorValidacion
	require.ErrorAs(t, err, &ev)
	assert.Equal(t, "platform", ev.Campo)

	buena := model.PlataformaWhatsapp
	resp, err := svc.Actualizar(context.Background(), p.ID, dto.ActualizarPedidoRequest{Plataforma: &buena})
	require.NoError(t, err)
	assert.Equal(t, model.PlataformaWhatsapp, resp.Plataforma)
}
