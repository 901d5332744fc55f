package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tiendaonline/internal/model"
	"tiendaonline/internal/repository"
	"tiendaonline/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubInsumoRepo struct {
	insumos map[uuid.UUID]*model.Insumo
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
	return nil, nil
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

func routerDePrueba(repo repository.InsumoRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewInsumosHandler(service.NewInsumoService(repo, zerolog.Nop()))
	r := gin.New()
	r.POST("/v1/insumos/:id/stock", h.AjustarStock)
	return r
}

func TestAjustarStockEndpoint(t *testing.T) {
	repo := &stubInsumoRepo{insumos: make(map[uuid.UUID]*model.Insumo)}
	insumo := &model.Insumo{Nombre: "Vinilo", Cantidad: decimal.NewFromInt(5)}
	require.NoError(t, repo.Create(context.Background(), insumo))
	r := routerDePrueba(repo)

	hacer := func(id, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/insumos/"+id+"/stock", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	// Ajuste válido.
	w := hacer(insumo.ID.String(), `{"quantity": 3}`)
	require.Equal(t, http.StatusOK, w.Code)
	var ok struct {
		NuevaCantidad decimal.Decimal `json:"new_quantity"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ok))
	assert.True(t, decimal.NewFromInt(8).Equal(ok.NuevaCantidad))

	// Delta cero: operación válida que no cambia nada.
	w = hacer(insumo.ID.String(), `{"quantity": 0}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ok))
	assert.True(t, decimal.NewFromInt(8).Equal(ok.NuevaCantidad))

	// Cantidad fraccionaria: error de validación, no de formato.
	w = hacer(insumo.ID.String(), `{"quantity": 2.5}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Sobregiro: conflicto y el stock no cambia.
	w = hacer(insumo.ID.String(), `{"quantity": -100}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	actual, err := repo.FindByID(context.Background(), insumo.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(8).Equal(actual.Cantidad))

	// Insumo inexistente.
	w = hacer(uuid.NewString(), `{"quantity": 1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// ID malformado.
	w = hacer("abc", `{"quantity": 1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
