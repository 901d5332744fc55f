package service

import (
	"context"
	"testing"

	"tiendaonline/internal/dto"
	"tiendaonline/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAjustarStockSumaYResta(t *testing.T) {
	repo := newStubInsumoRepo()
	svc := NewInsumoService(repo, zerolog.Nop())

	insumo := &model.Insumo{Nombre: "Vinilo blanco", Cantidad: decimal.NewFromInt(5)}
	require.NoError(t, repo.Create(context.Background(), insumo))

	resp, err := svc.AjustarStock(context.Background(), insumo.ID, 3)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(8).Equal(resp.NuevaCantidad))

	resp, err = svc.AjustarStock(context.Background(), insumo.ID, -8)
	require.NoError(t, err)
	assert.True(t, resp.NuevaCantidad.IsZero())
}

func TestAjustarStockRechazaSobregiro(t *testing.T) {
	repo := newStubInsumoRepo()
	svc := NewInsumoService(repo, zerolog.Nop())

	insumo := &model.Insumo{Nombre: "Vinilo blanco", Cantidad: decimal.NewFromInt(5)}
	require.NoError(t, repo.Create(context.Background(), insumo))

	_, err := svc.AjustarStock(context.Background(), insumo.ID, -10)
	require.ErrorIs(t, err, ErrConflictoStock)

	// La cantidad queda intacta tras el rechazo.
	actual, err := repo.FindByID(context.Background(), insumo.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5).Equal(actual.Cantidad))
}

func TestAjustarStockInsumoInexistente(t *testing.T) {
	svc := NewInsumoService(newStubInsumoRepo(), zerolog.Nop())

	_, err := svc.AjustarStock(context.Background(), uuid.New(), 1)
	require.ErrorIs(t, err, ErrNoEncontrado)
}

func TestUrgenciaReposicion(t *testing.T) {
	repo := newStubInsumoRepo()
	svc := NewInsumoService(repo, zerolog.Nop())

	casos := []struct {
		cantidad int64
		urgencia string
	}{
		{0, "Crítico - Sin stock"},
		{3, "Alto - Bajo stock"},
		{10, "Alto - Bajo stock"},
		{20, "Moderado"},
		{50, "Moderado"},
		{200, "Bajo - Stock suficiente"},
	}
	for _, c := range casos {
		resp, err := svc.Crear(context.Background(), dto.CrearInsumoRequest{
			Nombre:   "Insumo",
			Cantidad: decimal.NewFromInt(c.cantidad),
		})
		require.NoError(t, err)
		assert.Equal(t, c.urgencia, resp.UrgenciaReposicion, "cantidad %d", c.cantidad)
	}
}
