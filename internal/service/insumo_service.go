package service

import (
	"context"
	"errors"
	"fmt"

	"tiendaonline/internal/dto"
	"tiendaonline/internal/model"
	"tiendaonline/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Umbrales de reposición sobre la cantidad disponible.
var (
	umbralStockAlto     = decimal.NewFromInt(10)
	umbralStockModerado = decimal.NewFromInt(50)
)

type InsumoService struct {
	repo repository.InsumoRepository
	log  zerolog.Logger
}

func NewInsumoService(repo repository.InsumoRepository, log zerolog.Logger) *InsumoService {
	return &InsumoService{repo: repo, log: log.With().Str("service", "insumos").Logger()}
}

func (s *InsumoService) Crear(ctx context.Context, req dto.CrearInsumoRequest) (*dto.InsumoResponse, error) {
	i := &model.Insumo{
		Nombre:   req.Nombre,
		Tipo:     req.Tipo,
		Cantidad: req.Cantidad,
		Unidad:   req.Unidad,
		Marca:    req.Marca,
		Color:    req.Color,
	}
	if err := s.repo.Create(ctx, i); err != nil {
		return nil, fmt.Errorf("crear insumo: %w", err)
	}
	s.log.Info().Str("insumo_id", i.ID.String()).Str("nombre", i.Nombre).Msg("insumo creado")
	return mapInsumo(i), nil
}

func (s *InsumoService) Listar(ctx context.Context, f dto.InsumoFilter) ([]dto.InsumoResponse, error) {
	insumos, err := s.repo.List(ctx, repository.InsumoCriteria{
		Tipo:     f.Tipo,
		Marca:    f.Marca,
		Color:    f.Color,
		Busqueda: f.Busqueda,
	})
	if err != nil {
		return nil, fmt.Errorf("listar insumos: %w", err)
	}

	out := make([]dto.InsumoResponse, 0, len(insumos))
	for i := range insumos {
		out = append(out, *mapInsumo(&insumos[i]))
	}
	return out, nil
}

func (s *InsumoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.InsumoResponse, error) {
	i, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, fmt.Errorf("obtener insumo: %w", err)
	}
	return mapInsumo(i), nil
}

func (s *InsumoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarInsumoRequest) (*dto.InsumoResponse, error) {
	i, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, fmt.Errorf("obtener insumo: %w", err)
	}

	if req.Nombre != nil {
		i.Nombre = *req.Nombre
	}
	if req.Tipo != nil {
		i.Tipo = *req.Tipo
	}
	if req.Unidad != nil {
		i.Unidad = req.Unidad
	}
	if req.Marca != nil {
		i.Marca = *req.Marca
	}
	if req.Color != nil {
		i.Color = *req.Color
	}

	if err := s.repo.Update(ctx, i); err != nil {
		return nil, fmt.Errorf("actualizar insumo: %w", err)
	}
	return mapInsumo(i), nil
}

func (s *InsumoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoEncontrado
		}
		return fmt.Errorf("obtener insumo: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar insumo: %w", err)
	}
	s.log.Info().Str("insumo_id", id.String()).Msg("insumo eliminado")
	return nil
}

// AjustarStock applies a signed delta. A delta that would overdraw the stock
// returns ErrConflictoStock and leaves the quantity untouched.
func (s *InsumoService) AjustarStock(ctx context.Context, id uuid.UUID, delta int) (*dto.StockInsumoResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, fmt.Errorf("obtener insumo: %w", err)
	}

	ok, err := s.repo.AjustarStock(ctx, id, delta)
	if err != nil {
		return nil, fmt.Errorf("ajustar stock: %w", err)
	}
	if !ok {
		return nil, ErrConflictoStock
	}

	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("releer insumo: %w", err)
	}

	s.log.Info().
		Str("insumo_id", id.String()).
		Int("delta", delta).
		Str("nueva_cantidad", i.Cantidad.String()).
		Msg("stock ajustado")
	return &dto.StockInsumoResponse{NuevaCantidad: i.Cantidad}, nil
}

func mapInsumo(i *model.Insumo) *dto.InsumoResponse {
	return &dto.InsumoResponse{
		ID:                 i.ID.String(),
		Nombre:             i.Nombre,
		Tipo:               i.Tipo,
		Cantidad:           i.Cantidad,
		Unidad:             i.Unidad,
		Marca:              i.Marca,
		Color:              i.Color,
		UrgenciaReposicion: urgenciaReposicion(i.Cantidad),
	}
}

func urgenciaReposicion(cantidad decimal.Decimal) string {
	switch {
	case cantidad.LessThanOrEqual(decimal.Zero):
		return "Crítico - Sin stock"
	case cantidad.LessThanOrEqual(umbralStockAlto):
		return "Alto - Bajo stock"
	case cantidad.LessThanOrEqual(umbralStockModerado):
		return "Moderado"
	default:
		return "Bajo - Stock suficiente"
	}
}
