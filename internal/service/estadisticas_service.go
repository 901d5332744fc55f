package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tiendaonline/internal/dto"
	"tiendaonline/internal/filtro"
	"tiendaonline/internal/model"
	"tiendaonline/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	topProductosResumen    = 10
	topProductosInventario = 20
	mesesGrafico           = 6
	diasReportePorDefecto  = 30
)

type EstadisticasService struct {
	repo repository.PedidoRepository
	loc  *time.Location
	now  func() time.Time
	log  zerolog.Logger
}

func NewEstadisticasService(repo repository.PedidoRepository, loc *time.Location, log zerolog.Logger) *EstadisticasService {
	return &EstadisticasService{
		repo: repo,
		loc:  loc,
		now:  time.Now,
		log:  log.With().Str("service", "estadisticas").Logger(),
	}
}

// Resumen builds the full statistics report over [start, end]. Each bound is
// resolved on its own: an absent or unparseable start_date falls back to now
// minus `days`, an absent or unparseable end_date falls back to now.
func (s *EstadisticasService) Resumen(ctx context.Context, startStr, endStr string, days int) (*dto.EstadisticasResponse, error) {
	if days < 1 {
		days = diasReportePorDefecto
	}
	ahora := s.now().In(s.loc)

	desde := ahora.AddDate(0, 0, -days)
	if startStr != "" {
		if t, err := time.ParseInLocation("2006-01-02", startStr, s.loc); err == nil {
			desde = filtro.InicioDelDia(t)
		} else {
			s.log.Warn().Str("start_date", startStr).
				Msg("start_date inválida, usando ventana por días")
		}
	}

	hasta := ahora
	if endStr != "" {
		if t, err := time.ParseInLocation("2006-01-02", endStr, s.loc); err == nil {
			hasta = filtro.FinDelDia(t)
		} else {
			s.log.Warn().Str("end_date", endStr).
				Msg("end_date inválida, usando el momento actual")
		}
	}

	cl := filtro.RangoCreacion(desde, hasta)

	totalPedidos, err := s.repo.Contar(ctx, cl)
	if err != nil {
		return nil, fmt.Errorf("contar pedidos: %w", err)
	}
	ingresos, err := s.repo.SumarIngresos(ctx, cl)
	if err != nil {
		return nil, fmt.Errorf("sumar ingresos: %w", err)
	}

	porEstado, err := s.bucketsOrdenados(ctx, "estado", cl)
	if err != nil {
		return nil, err
	}
	porPlataforma, err := s.bucketsOrdenados(ctx, "plataforma", cl)
	if err != nil {
		return nil, err
	}

	populares, err := s.productosPopulares(ctx, cl, topProductosResumen, true)
	if err != nil {
		return nil, err
	}

	tendencia, err := s.tendenciaDiaria(ctx, cl, desde, hasta)
	if err != nil {
		return nil, err
	}

	return &dto.EstadisticasResponse{
		// Days echoes the requested parameter, not the resolved window length.
		Periodo: dto.PeriodoResponse{
			Start: desde.Format("2006-01-02"),
			End:   hasta.Format("2006-01-02"),
			Days:  days,
		},
		Totales:            totales(totalPedidos, ingresos),
		PorEstado:          porEstado,
		PorPlataforma:      porPlataforma,
		ProductosPopulares: populares,
		TendenciaDiaria:    tendencia,
	}, nil
}

// Dashboard computes the quick stats: today, the week starting Monday, the
// calendar month, the open-work counters, and this month's top product.
func (s *EstadisticasService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	ahora := s.now().In(s.loc)
	hoy := filtro.InicioDelDia(ahora)
	finHoy := filtro.FinDelDia(ahora)

	// Semana empezando lunes.
	diasDesdeLunes := (int(ahora.Weekday()) + 6) % 7
	inicioSemana := hoy.AddDate(0, 0, -diasDesdeLunes)
	inicioMes := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, s.loc)

	ventanaHoy, err := s.ventana(ctx, hoy, finHoy)
	if err != nil {
		return nil, err
	}
	ventanaSemana, err := s.ventana(ctx, inicioSemana, finHoy)
	if err != nil {
		return nil, err
	}
	ventanaMes, err := s.ventana(ctx, inicioMes, finHoy)
	if err != nil {
		return nil, err
	}

	pendientes, err := s.repo.Contar(ctx, []filtro.Clausula{
		{Campo: "estado", Op: filtro.OpIgual, Valor: model.EstadoSolicitado},
	})
	if err != nil {
		return nil, fmt.Errorf("contar pendientes: %w", err)
	}
	enProceso, err := s.repo.Contar(ctx, []filtro.Clausula{
		{Campo: "estado", Op: filtro.OpIgual, Valor: model.EstadoEnProceso},
	})
	if err != nil {
		return nil, fmt.Errorf("contar en proceso: %w", err)
	}

	// El producto top es histórico: sin recorte de fechas ni de estado.
	populares, err := s.productosPopulares(ctx, nil, 1, false)
	if err != nil {
		return nil, err
	}
	var top *dto.ProductoPopularResponse
	if len(populares) > 0 {
		top = &populares[0]
	}

	return &dto.DashboardResponse{
		Hoy:               ventanaHoy,
		EstaSemana:        ventanaSemana,
		EsteMes:           ventanaMes,
		PedidosPendientes: pendientes,
		PedidosEnProceso:  enProceso,
		ProductoTop:       top,
	}, nil
}

// Grafico emits chart-ready parallel arrays. Categorical charts carry every
// known key, zero-filled, in declaration order; the monthly chart covers the
// last six calendar months ending in the current one.
func (s *EstadisticasService) Grafico(ctx context.Context, tipo string) (*dto.GraficoResponse, error) {
	switch tipo {
	case "status":
		return s.graficoCategorico(ctx, "estado", model.EstadosPedido)
	case "platform":
		return s.graficoCategorico(ctx, "plataforma", model.Plataformas)
	case "monthly":
		return s.graficoMensual(ctx)
	default:
		return nil, &filtro.ErrorValidacion{Campo: "type", Mensaje: "debe ser status, platform o monthly"}
	}
}

// Inventario reports demand per catalog product and per category. Cancelled
// orders count here; only the popular-products ranking leaves them out.
func (s *EstadisticasService) Inventario(ctx context.Context) (*dto.InventarioResponse, error) {
	filas, err := s.repo.AgruparPorProducto(ctx, nil, false)
	if err != nil {
		return nil, fmt.Errorf("agrupar por producto: %w", err)
	}
	sort.SliceStable(filas, func(i, j int) bool { return filas[i].Cantidad > filas[j].Cantidad })
	if len(filas) > topProductosInventario {
		filas = filas[:topProductosInventario]
	}

	top := make([]dto.ProductoInventarioResponse, 0, len(filas))
	for _, f := range filas {
		promedio := decimal.Zero
		if f.Cantidad > 0 {
			promedio = f.Ingresos.Div(decimal.NewFromInt(f.Cantidad)).Round(2)
		}
		top = append(top, dto.ProductoInventarioResponse{
			ProductoID:    f.ProductoID,
			Nombre:        f.Nombre,
			Precio:        f.Precio,
			Cantidad:      f.Cantidad,
			Ingresos:      f.Ingresos,
			ValorPromedio: promedio,
		})
	}

	categorias, err := s.repo.AgruparPorCategoria(ctx)
	if err != nil {
		return nil, fmt.Errorf("agrupar por categoria: %w", err)
	}
	sort.SliceStable(categorias, func(i, j int) bool { return categorias[i].Cantidad > categorias[j].Cantidad })

	porCategoria := make([]dto.CategoriaInventarioResponse, 0, len(categorias))
	for _, c := range categorias {
		porCategoria = append(porCategoria, dto.CategoriaInventarioResponse{
			Categoria: c.Categoria,
			Cantidad:  c.Cantidad,
			Ingresos:  c.Ingresos,
		})
	}

	return &dto.InventarioResponse{ProductosTop: top, PorCategoria: porCategoria}, nil
}

// ── Internals ─────────────────────────────────────────────────────────────────

func totales(pedidos int64, ingresos decimal.Decimal) dto.TotalesResponse {
	promedio := decimal.Zero
	if pedidos > 0 {
		promedio = ingresos.Div(decimal.NewFromInt(pedidos)).Round(2)
	}
	return dto.TotalesResponse{Pedidos: pedidos, Ingresos: ingresos, ValorPromedio: promedio}
}

// bucketsOrdenados sorts group-by rows by count descending. The sort is
// stable, so equal counts keep the order the rows arrived in.
func (s *EstadisticasService) bucketsOrdenados(ctx context.Context, campo string, cl []filtro.Clausula) ([]dto.BucketResponse, error) {
	filas, err := s.repo.ContarPorCampo(ctx, campo, cl)
	if err != nil {
		return nil, fmt.Errorf("contar por %s: %w", campo, err)
	}
	sort.SliceStable(filas, func(i, j int) bool { return filas[i].Cantidad > filas[j].Cantidad })

	out := make([]dto.BucketResponse, 0, len(filas))
	for _, f := range filas {
		out = append(out, dto.BucketResponse{Clave: f.Clave, Cantidad: f.Cantidad})
	}
	return out, nil
}

func (s *EstadisticasService) productosPopulares(ctx context.Context, cl []filtro.Clausula, limite int, excluirCancelados bool) ([]dto.ProductoPopularResponse, error) {
	filas, err := s.repo.AgruparPorProducto(ctx, cl, excluirCancelados)
	if err != nil {
		return nil, fmt.Errorf("agrupar por producto: %w", err)
	}
	sort.SliceStable(filas, func(i, j int) bool { return filas[i].Cantidad > filas[j].Cantidad })
	if len(filas) > limite {
		filas = filas[:limite]
	}

	out := make([]dto.ProductoPopularResponse, 0, len(filas))
	for _, f := range filas {
		out = append(out, dto.ProductoPopularResponse{
			ProductoID: f.ProductoID,
			Nombre:     f.Nombre,
			Cantidad:   f.Cantidad,
			Ingresos:   f.Ingresos,
		})
	}
	return out, nil
}

// tendenciaDiaria zero-fills every calendar day of the window so the series
// length equals the window length even with no orders at all.
func (s *EstadisticasService) tendenciaDiaria(ctx context.Context, cl []filtro.Clausula, desde, hasta time.Time) ([]dto.DiaTendenciaResponse, error) {
	filas, err := s.repo.ContarPorDia(ctx, cl, s.loc.String())
	if err != nil {
		return nil, fmt.Errorf("contar por dia: %w", err)
	}

	porDia := make(map[string]int64, len(filas))
	for _, f := range filas {
		porDia[f.Fecha] = f.Cantidad
	}

	var out []dto.DiaTendenciaResponse
	fin := filtro.InicioDelDia(hasta)
	for d := filtro.InicioDelDia(desde); !d.After(fin); d = d.AddDate(0, 0, 1) {
		clave := d.Format("2006-01-02")
		out = append(out, dto.DiaTendenciaResponse{Fecha: clave, Cantidad: porDia[clave]})
	}
	return out, nil
}

func (s *EstadisticasService) ventana(ctx context.Context, desde, hasta time.Time) (dto.VentanaResponse, error) {
	cl := filtro.RangoCreacion(desde, hasta)
	pedidos, err := s.repo.Contar(ctx, cl)
	if err != nil {
		return dto.VentanaResponse{}, fmt.Errorf("contar ventana: %w", err)
	}
	ingresos, err := s.repo.SumarIngresos(ctx, cl)
	if err != nil {
		return dto.VentanaResponse{}, fmt.Errorf("sumar ventana: %w", err)
	}
	return dto.VentanaResponse{Pedidos: pedidos, Ingresos: ingresos}, nil
}

func (s *EstadisticasService) graficoCategorico(ctx context.Context, campo string, claves []string) (*dto.GraficoResponse, error) {
	filas, err := s.repo.ContarPorCampo(ctx, campo, nil)
	if err != nil {
		return nil, fmt.Errorf("contar por %s: %w", campo, err)
	}
	porClave := make(map[string]int64, len(filas))
	for _, f := range filas {
		porClave[f.Clave] = f.Cantidad
	}

	resp := &dto.GraficoResponse{
		Labels: make([]string, 0, len(claves)),
		Data:   make([]int64, 0, len(claves)),
	}
	for _, clave := range claves {
		resp.Labels = append(resp.Labels, clave)
		resp.Data = append(resp.Data, porClave[clave])
	}
	return resp, nil
}

func (s *EstadisticasService) graficoMensual(ctx context.Context) (*dto.GraficoResponse, error) {
	ahora := s.now().In(s.loc)
	inicioMesActual := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, s.loc)

	resp := &dto.GraficoResponse{
		Labels: make([]string, 0, mesesGrafico),
		Data:   make([]int64, 0, mesesGrafico),
	}
	for i := mesesGrafico - 1; i >= 0; i-- {
		inicio := inicioMesActual.AddDate(0, -i, 0)
		fin := inicio.AddDate(0, 1, 0).Add(-time.Nanosecond)

		total, err := s.repo.Contar(ctx, filtro.RangoCreacion(inicio, fin))
		if err != nil {
			return nil, fmt.Errorf("contar mes %s: %w", inicio.Format("2006-01"), err)
		}
		resp.Labels = append(resp.Labels, inicio.Format("2006-01"))
		resp.Data = append(resp.Data, total)
	}
	return resp, nil
}
