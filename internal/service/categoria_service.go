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
	"gorm.io/gorm"
)

type CategoriaService struct {
	repo repository.CategoriaRepository
	log  zerolog.Logger
}

func NewCategoriaService(repo repository.CategoriaRepository, log zerolog.Logger) *CategoriaService {
	return &CategoriaService{repo: repo, log: log.With().Str("service", "categorias").Logger()}
}

func (s *CategoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	slug := req.Slug
	if slug == "" {
		slug = slugify(req.Nombre)
	}

	c := &model.Categoria{Nombre: req.Nombre, Slug: slug}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("crear categoria: %w", err)
	}

	s.log.Info().Str("categoria_id", c.ID.String()).Str("slug", c.Slug).Msg("categoria creada")
	return mapCategoria(c), nil
}

func (s *CategoriaService) Listar(ctx context.Context) ([]dto.CategoriaResponse, error) {
	categorias, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar categorias: %w", err)
	}

	out := make([]dto.CategoriaResponse, 0, len(categorias))
	for i := range categorias {
		out = append(out, *mapCategoria(&categorias[i]))
	}
	return out, nil
}

func (s *CategoriaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.CategoriaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, fmt.Errorf("obtener categoria: %w", err)
	}
	return mapCategoria(c), nil
}

func (s *CategoriaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, fmt.Errorf("obtener categoria: %w", err)
	}

	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if req.Slug != nil {
		c.Slug = *req.Slug
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("actualizar categoria: %w", err)
	}
	return mapCategoria(c), nil
}

func (s *CategoriaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoEncontrado
		}
		return fmt.Errorf("obtener categoria: %w", err)
	}

	total, err := s.repo.ContarProductos(ctx, id)
	if err != nil {
		return fmt.Errorf("contar productos de categoria: %w", err)
	}
	if total > 0 {
		return ErrCategoriaEnUso
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar categoria: %w", err)
	}
	s.log.Info().Str("categoria_id", id.String()).Msg("categoria eliminada")
	return nil
}

func mapCategoria(c *model.Categoria) *dto.CategoriaResponse {
	return &dto.CategoriaResponse{ID: c.ID, Nombre: c.Nombre, Slug: c.Slug}
}
