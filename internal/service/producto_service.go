package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tiendaonline/internal/dto"
	"tiendaonline/internal/model"
	"tiendaonline/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	cacheKeyProducto = "catalogo:producto:%s" // slug
	cacheTTLProducto = 10 * time.Minute
)

type ProductoService struct {
	repo      repository.ProductoRepository
	categoria repository.CategoriaRepository
	cache     *redis.Client
	loc       *time.Location
	now       func() time.Time
	log       zerolog.Logger
}

func NewProductoService(
	repo repository.ProductoRepository,
	categoria repository.CategoriaRepository,
	cache *redis.Client,
	loc *time.Location,
	log zerolog.Logger,
) *ProductoService {
	return &ProductoService{
		repo:      repo,
		categoria: categoria,
		cache:     cache,
		loc:       loc,
		now:       time.Now,
		log:       log.With().Str("service", "productos").Logger(),
	}
}

// Catalogo runs the public catalog search. Unparseable numeric or boolean
// filters are ignored rather than rejected.
func (s *ProductoService) Catalogo(ctx context.Context, f dto.CatalogoFilter) (*dto.ProductoListResponse, error) {
	criteria := repository.CatalogoCriteria{
		CategoriaSlug: f.Categoria,
		Busqueda:      f.Busqueda,
		Page:          f.Page,
		Limit:         f.Limit,
	}

	switch f.Destacado {
	case "":
	case "true", "1", "yes", "on":
		v := true
		criteria.Destacado = &v
	case "false", "0", "no", "off":
		v := false
		criteria.Destacado = &v
	}
	if f.MinPrecio != "" {
		if d, err := decimal.NewFromString(f.MinPrecio); err == nil {
			criteria.MinPrecio = &d
		}
	}
	if f.MaxPrecio != "" {
		if d, err := decimal.NewFromString(f.MaxPrecio); err == nil {
			criteria.MaxPrecio = &d
		}
	}

	productos, total, err := s.repo.Buscar(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("buscar catalogo: %w", err)
	}

	ahora := s.now().In(s.loc)
	out := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		out = append(out, *mapProducto(&productos[i], ahora))
	}
	return &dto.ProductoListResponse{Data: out, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

// DetallePorSlug serves the product detail with a read-through cache keyed
// by slug.
func (s *ProductoService) DetallePorSlug(ctx context.Context, slug string) (*dto.ProductoResponse, error) {
	key := fmt.Sprintf(cacheKeyProducto, slug)

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key).Result(); err == nil {
			var cached dto.ProductoResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	p, err := s.repo.FindBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, fmt.Errorf("obtener producto: %w", err)
	}

	resp := mapProducto(p, s.now().In(s.loc))
	if s.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, key, raw, cacheTTLProducto).Err(); err != nil {
				s.log.Warn().Err(err).Str("slug", slug).Msg("no se pudo cachear el producto")
			}
		}
	}
	return resp, nil
}

func (s *ProductoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	categoriaID, err := uuid.Parse(req.CategoriaID)
	if err != nil {
		return nil, ErrNoEncontrado
	}
	if _, err := s.categoria.FindByID(ctx, categoriaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, fmt.Errorf("obtener categoria: %w", err)
	}

	base := req.Slug
	if base == "" {
		base = slugify(req.Nombre)
	}
	slug, err := s.slugUnico(ctx, base)
	if err != nil {
		return nil, err
	}

	p := &model.Producto{
		Nombre:      req.Nombre,
		Slug:        slug,
		Descripcion: req.Descripcion,
		CategoriaID: categoriaID,
		Precio:      req.Precio,
		Destacado:   req.Destacado,
	}
	for i, url := range req.Imagenes {
		p.Imagenes = append(p.Imagenes, model.ProductoImagen{URL: url, Posicion: i})
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("crear producto: %w", err)
	}

	s.log.Info().Str("producto_id", p.ID.String()).Str("slug", p.Slug).Msg("producto creado")
	creado, err := s.repo.FindByID(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("releer producto: %w", err)
	}
	return mapProducto(creado, s.now().In(s.loc)), nil
}

func (s *ProductoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, fmt.Errorf("obtener producto: %w", err)
	}
	return mapProducto(p, s.now().In(s.loc)), nil
}

func (s *ProductoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, fmt.Errorf("obtener producto: %w", err)
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = *req.Descripcion
	}
	if req.CategoriaID != nil {
		categoriaID, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, ErrNoEncontrado
		}
		if _, err := s.categoria.FindByID(ctx, categoriaID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNoEncontrado
			}
			return nil, fmt.Errorf("obtener categoria: %w", err)
		}
		p.CategoriaID = categoriaID
		p.Categoria = nil
	}
	if req.Precio != nil {
		p.Precio = *req.Precio
	}
	if req.Destacado != nil {
		p.Destacado = *req.Destacado
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("actualizar producto: %w", err)
	}
	s.invalidar(ctx, p.Slug)

	actualizado, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("releer producto: %w", err)
	}
	return mapProducto(actualizado, s.now().In(s.loc)), nil
}

func (s *ProductoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNoEncontrado
	}
	if err != nil {
		return fmt.Errorf("obtener producto: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar producto: %w", err)
	}
	s.invalidar(ctx, p.Slug)
	s.log.Info().Str("producto_id", id.String()).Msg("producto eliminado")
	return nil
}

// slugUnico appends -2, -3, ... until the slug is free.
func (s *ProductoService) slugUnico(ctx context.Context, base string) (string, error) {
	slug := base
	for i := 2; ; i++ {
		existe, err := s.repo.ExisteSlug(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("verificar slug: %w", err)
		}
		if !existe {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *ProductoService) invalidar(ctx context.Context, slug string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, fmt.Sprintf(cacheKeyProducto, slug)).Err(); err != nil {
		s.log.Warn().Err(err).Str("slug", slug).Msg("no se pudo invalidar el cache del producto")
	}
}

func mapProducto(p *model.Producto, ahora time.Time) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:                p.ID.String(),
		Nombre:            p.Nombre,
		Slug:              p.Slug,
		Descripcion:       p.Descripcion,
		Precio:            p.Precio,
		Destacado:         p.Destacado,
		CreatedAt:         p.CreatedAt.In(ahora.Location()).Format(time.RFC3339),
		DiasDesdeCreacion: diasEntre(p.CreatedAt, ahora),
		Imagenes:          make([]dto.ImagenResponse, 0, len(p.Imagenes)),
	}
	if p.Categoria != nil {
		resp.Categoria = mapCategoria(p.Categoria)
	}
	for _, img := range p.Imagenes {
		resp.Imagenes = append(resp.Imagenes, dto.ImagenResponse{URL: img.URL, Posicion: img.Posicion})
	}
	return resp
}
