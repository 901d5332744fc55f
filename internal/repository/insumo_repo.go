package repository

import (
	"context"

	"tiendaonline/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InsumoCriteria struct {
	Tipo     string
	Marca    string
	Color    string
	Busqueda string
}

type InsumoRepository interface {
	Create(ctx context.Context, i *model.Insumo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Insumo, error)
	List(ctx context.Context, criteria InsumoCriteria) ([]model.Insumo, error)
	Update(ctx context.Context, i *model.Insumo) error
	Delete(ctx context.Context, id uuid.UUID) error
	// AjustarStock applies a signed delta only when the resulting quantity
	// stays non-negative. Returns false, leaving the row untouched, when the
	// delta would overdraw the stock.
	AjustarStock(ctx context.Context, id uuid.UUID, delta int) (bool, error)
}

type insumoRepo struct{ db *gorm.DB }

func NewInsumoRepository(db *gorm.DB) InsumoRepository { return &insumoRepo{db: db} }

func (r *insumoRepo) Create(ctx context.Context, i *model.Insumo) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *insumoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Insumo, error) {
	var i model.Insumo
	err := r.db.WithContext(ctx).First(&i, "id = ?", id).Error
	return &i, err
}

func (r *insumoRepo) List(ctx context.Context, criteria InsumoCriteria) ([]model.Insumo, error) {
	q := r.db.WithContext(ctx).Model(&model.Insumo{})

	if criteria.Tipo != "" {
		q = q.Where("tipo = ?", criteria.Tipo)
	}
	if criteria.Marca != "" {
		q = q.Where("marca = ?", criteria.Marca)
	}
	if criteria.Color != "" {
		q = q.Where("color = ?", criteria.Color)
	}
	if criteria.Busqueda != "" {
		patron := "%" + criteria.Busqueda + "%"
		q = q.Where("nombre ILIKE ? OR tipo ILIKE ? OR marca ILIKE ?", patron, patron, patron)
	}

	var insumos []model.Insumo
	err := q.Order("nombre ASC").Find(&insumos).Error
	return insumos, err
}

func (r *insumoRepo) Update(ctx context.Context, i *model.Insumo) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *insumoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Insumo{}, "id = ?", id).Error
}

func (r *insumoRepo) AjustarStock(ctx context.Context, id uuid.UUID, delta int) (bool, error) {
	// Single conditional UPDATE so concurrent adjustments can never drive the
	// quantity below zero.
	res := r.db.WithContext(ctx).Model(&model.Insumo{}).
		Where("id = ? AND cantidad + ? >= 0", id, delta).
		Update("cantidad", gorm.Expr("cantidad + ?", delta))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
